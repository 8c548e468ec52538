package availability

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Window открытый интервал дня с итоговой вместимостью
type Window struct {
	Start    types.TimeString
	End      types.TimeString
	Capacity int
}

// ResolveDay накладывает override даты на недельный шаблон события.
//
//   - blackout: окон нет;
//   - override с картой окон: берется только ключ дня недели даты, без отката к шаблону;
//   - иначе окна шаблона события на этот день недели.
//
// MaxParticipants override'а заменяет вместимость всех окон даты.
func ResolveDay(event *domain.Event, date time.Time, override *domain.Override) []Window {
	if override != nil && override.IsUnavailable {
		return nil
	}

	source := event.Config
	if override != nil && override.HasConfig() {
		source = override.Config
	}

	windows, ok := source.Windows(date.Weekday())
	if !ok || len(windows) == 0 {
		return nil
	}

	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		result = append(result, Window{
			Start:    w.Start,
			End:      w.End,
			Capacity: windowCapacity(event, w, override),
		})
	}
	return result
}

func windowCapacity(event *domain.Event, w domain.TimeWindow, override *domain.Override) int {
	if override != nil && override.MaxParticipants != nil {
		return *override.MaxParticipants
	}
	if w.MaxParticipants != nil {
		return *w.MaxParticipants
	}
	return event.MaxParticipants
}
