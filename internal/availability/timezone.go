package availability

import (
	"time"
	// база часовых поясов внутри бинарника: образ может не содержать /usr/share/zoneinfo
	_ "time/tzdata"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// пробы смещений вокруг момента: переход DST не бывает чаще раза в сутки
var offsetSamples = []time.Duration{-26 * time.Hour, -12 * time.Hour, 0, 12 * time.Hour, 26 * time.Hour}

// LocalToUTC переводит настенное время wall календарного дня date в UTC.
//
// Правило для переходов DST:
//   - несуществующее время (весенний переход) - ok=false, слот пропускается;
//   - неоднозначное время (осенний переход) - выбирается более ранний момент.
func LocalToUTC(date time.Time, wall types.TimeString, loc *time.Location) (time.Time, bool) {
	y, m, d := date.Date()
	h, mi := wall.Hour(), wall.Minute()
	if h < 0 || mi < 0 {
		return time.Time{}, false
	}

	// настенное время, как если бы пояс был UTC
	naive := time.Date(y, m, d, h, mi, 0, 0, time.UTC)

	var (
		best  time.Time
		found bool
		seen  = make(map[int]struct{}, len(offsetSamples))
	)

	for _, shift := range offsetSamples {
		_, offset := naive.Add(shift).In(loc).Zone()
		if _, ok := seen[offset]; ok {
			continue
		}
		seen[offset] = struct{}{}

		candidate := naive.Add(-time.Duration(offset) * time.Second)
		local := candidate.In(loc)
		cy, cm, cd := local.Date()
		if cy != y || cm != m || cd != d || local.Hour() != h || local.Minute() != mi {
			continue
		}

		if !found || candidate.Before(best) {
			best = candidate
			found = true
		}
	}

	if !found {
		return time.Time{}, false
	}
	return best.UTC(), true
}
