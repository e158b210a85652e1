package converter

import (
	"math"
	"regexp"
	"strconv"
)

// FFmpeg'in tanı akışında taranan iki desen: toplam süre satırı (dönüşüm
// öncesi bir kez) ve ilerleme satırındaki time= işareti (dönüşüm boyunca).
var (
	durationPattern = regexp.MustCompile(`Duration:\s*(\d{2}):(\d{2}):(\d{2}\.\d+)`)
	timePattern     = regexp.MustCompile(`time=(\d{2}):(\d{2}):(\d{2}\.\d+)`)
)

// ScanDuration satırda "Duration: HH:MM:SS.ff" arar ve saniye döner.
func ScanDuration(line string) (float64, bool) {
	return scanClock(durationPattern, line)
}

// ScanProgressTime satırda "time=HH:MM:SS.ff" arar ve saniye döner.
func ScanProgressTime(line string) (float64, bool) {
	return scanClock(timePattern, line)
}

func scanClock(pattern *regexp.Regexp, line string) (float64, bool) {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	hours, err1 := strconv.Atoi(m[1])
	minutes, err2 := strconv.Atoi(m[2])
	seconds, err3 := strconv.ParseFloat(m[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	return float64(hours)*3600 + float64(minutes)*60 + seconds, true
}

// ProgressPercent geçen süreyi [0,100] aralığında yüzdeye çevirir.
func ProgressPercent(currentSeconds, effectiveDuration float64) float64 {
	if effectiveDuration <= 0 {
		return 0
	}
	return math.Min(currentSeconds/effectiveDuration*100, 100)
}

// progressCoalescer art arda gelen yüzdeleri seyreltir: son yayınlanan
// değerden 0.5 puandan fazla uzaklaşmayan güncellemeler bastırılır.
type progressCoalescer struct {
	last float64
}

func newProgressCoalescer() *progressCoalescer {
	return &progressCoalescer{last: -1}
}

// Step yeni yüzdenin yayınlanıp yayınlanmayacağını döner.
func (c *progressCoalescer) Step(percent float64) bool {
	if math.Abs(percent-c.last) <= 0.5 {
		return false
	}
	c.last = percent
	return true
}
