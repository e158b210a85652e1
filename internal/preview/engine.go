package preview

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// defaultFrameRate kaynak geçersiz bir kare oranı bildirdiğinde kullanılır.
const defaultFrameRate = 30

// Session Engine'in o anki oynatma durumunun değer kopyasıdır. Sunum katmanı
// durum okumasını bu kopya üzerinden yapar; Engine'in iç alanlarına erişmez.
type Session struct {
	Path         string
	Loaded       bool
	Playing      bool
	Scrubbing    bool
	CurrentFrame int
	FrameCount   int
	FrameRate    float64
	Position     float64 // saniye
	Duration     float64 // saniye
}

// SliderPosition [0,1] aralığında zaman çubuğu konumu döner.
func (s Session) SliderPosition() float64 {
	if s.Duration <= 0 {
		return 0
	}
	pos := s.Position / s.Duration
	if pos < 0 {
		return 0
	}
	if pos > 1 {
		return 1
	}
	return pos
}

// Engine tek bir video için kare hassasiyetinde önizleme motorudur.
// Aynı anda en fazla bir decode oturumu açık tutar; yeni bir dosya
// yüklenirken önce eski oturum kapatılır.
//
// Oynatma döngüsü tek bir bekleyen zamanlayıcı üzerinden ilerler. Seek ve
// pause, yeni bir kare çözülmeden önce bu zamanlayıcıyı iptal eder; böylece
// havada kalan eski bir tick daha taze bir seek sonucunun üzerine yazamaz.
type Engine struct {
	mu sync.Mutex

	source   Source
	viewport *Viewport
	logf     func(format string, args ...any)

	clip       Clip
	path       string
	frameRate  float64
	frameCount int

	current int
	playing bool

	pending  *time.Timer
	timerGen uint64

	scrubbing         bool
	playingBeforeGrab bool
}

// NewEngine verilen decode kaynağı ve görüntüleme alanıyla motor oluşturur.
// logf nil ise oynatma sırasındaki decode hataları sessizce yutulmaz ama
// hiçbir yere de yazılmaz; sunum katmanı kendi log alıcısını vermelidir.
func NewEngine(source Source, viewport *Viewport, logf func(format string, args ...any)) *Engine {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Engine{
		source:   source,
		viewport: viewport,
		logf:     logf,
	}
}

// Load dosyayı açar, kare bilgilerini okur ve ilk kareyi çizer. Önceki
// oturum varsa önce serbest bırakılır. Hata durumunda motor boş kalır;
// önizlemenin yokluğu dönüşüme engel değildir, karar çağırana aittir.
func (e *Engine) Load(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.releaseLocked()

	if e.source == nil {
		return fmt.Errorf("önizleme kaynağı yok")
	}

	clip, err := e.source.Open(path)
	if err != nil {
		return fmt.Errorf("video yüklenemedi: %w", err)
	}

	info := clip.Info()
	e.clip = clip
	e.path = path
	e.frameRate = info.FrameRate
	if e.frameRate <= 0 {
		e.frameRate = defaultFrameRate
	}
	e.frameCount = info.FrameCount
	e.current = 0
	e.playing = false

	e.seekLocked(0)
	return nil
}

// Seek imleci verilen kareye taşır ve tek kare çözer. Aralık dışı değerler
// [0, frameCount-1] içine sıkıştırılır. Oynatma durumunu değiştirmez;
// oynatma sürüyorsa döngü yeni konumdan devam eder.
func (e *Engine) Seek(frame int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return
	}
	e.seekLocked(frame)
}

// SeekToTime saniye cinsinden konuma en yakın kareye gider.
func (e *Engine) SeekToTime(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil {
		return
	}
	e.seekLocked(int(math.Round(seconds * e.frameRate)))
}

func (e *Engine) seekLocked(frame int) {
	// Önce bekleyen tick iptal edilir, sonra konumlanılır. Sıra önemli.
	e.cancelPendingLocked()

	if frame < 0 {
		frame = 0
	}
	if max := e.frameCount - 1; max >= 0 && frame > max {
		frame = max
	}

	e.current = frame
	img, err := e.clip.SeekFrame(frame)
	if err != nil {
		e.logf("kare %d çözülemedi: %v", frame, err)
	} else if e.viewport != nil {
		e.viewport.Render(img)
	}

	if e.playing {
		e.scheduleLocked(e.frameDelayLocked())
	}
}

// Play oynatmayı başlatır; döngü zaten planlıysa ikinci bir zamanlayıcı
// açmaz.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil || e.playing {
		return
	}
	e.playing = true
	e.scheduleLocked(0)
}

// Pause oynatmayı durdurur ve bekleyen tick'i iptal eder. Son çizilen kare
// görünür kalır.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pauseLocked()
}

func (e *Engine) pauseLocked() {
	e.playing = false
	e.cancelPendingLocked()
}

// CurrentDuration o anki konumu saniye cinsinden döner.
func (e *Engine) CurrentDuration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.frameRate <= 0 {
		return 0
	}
	return float64(e.current) / e.frameRate
}

// Duration toplam süreyi saniye cinsinden döner.
func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.durationLocked()
}

func (e *Engine) durationLocked() float64 {
	if e.frameRate <= 0 {
		return 0
	}
	return float64(e.frameCount) / e.frameRate
}

// Snapshot sunum katmanına verilecek durum kopyasını üretir.
func (e *Engine) Snapshot() Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Session{
		Path:         e.path,
		Loaded:       e.clip != nil,
		Playing:      e.playing,
		Scrubbing:    e.scrubbing,
		CurrentFrame: e.current,
		FrameCount:   e.frameCount,
		FrameRate:    e.frameRate,
		Position:     float64(e.current) / math.Max(e.frameRate, 1),
		Duration:     e.durationLocked(),
	}
}

// BeginScrub zaman çubuğu sürüklemesini başlatır: oynatma durumunu saklar
// ve oynatmayı askıya alır. EndScrub ile eşli kullanılır.
func (e *Engine) BeginScrub() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil || e.scrubbing {
		return
	}
	e.scrubbing = true
	e.playingBeforeGrab = e.playing
	if e.playing {
		e.pauseLocked()
	}
}

// Scrub sürükleme sırasında [0,1] konumundaki kareyi önizler.
func (e *Engine) Scrub(pos float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil || !e.scrubbing {
		return
	}
	e.seekLocked(e.frameForPositionLocked(pos))
}

// EndScrub sürüklemeyi bitirir: hedef kareye gider ve sürükleme öncesi
// oynatma/duraklatma durumunu geri yükler.
func (e *Engine) EndScrub(pos float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clip == nil || !e.scrubbing {
		return
	}
	e.scrubbing = false
	e.seekLocked(e.frameForPositionLocked(pos))
	if e.playingBeforeGrab && !e.playing {
		e.playing = true
		e.scheduleLocked(e.frameDelayLocked())
	}
	e.playingBeforeGrab = false
}

// Scrubbing sürüklemenin aktif olup olmadığını döner; sunum katmanı bu
// sırada periyodik konum okumasını bastırır.
func (e *Engine) Scrubbing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrubbing
}

func (e *Engine) frameForPositionLocked(pos float64) int {
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return int(math.Round(pos * float64(e.frameCount)))
}

// Release oynatmayı durdurur ve decode oturumunu kapatır. Birden fazla kez
// çağrılabilir; yeni dosya yüklemeden ve kapanıştan önce çağrılmalıdır.
func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.releaseLocked()
}

func (e *Engine) releaseLocked() {
	e.pauseLocked()
	if e.clip != nil {
		if err := e.clip.Close(); err != nil {
			e.logf("decode oturumu kapatılamadı: %v", err)
		}
		e.clip = nil
	}
	e.path = ""
	e.frameRate = 0
	e.frameCount = 0
	e.current = 0
	e.scrubbing = false
	e.playingBeforeGrab = false
}

// scheduleLocked tek bekleyen zamanlayıcıyı kurar. timerGen, iptalle
// yarışan eski bir tick'in işlem yapmasını engeller.
func (e *Engine) scheduleLocked(d time.Duration) {
	e.timerGen++
	gen := e.timerGen
	e.pending = time.AfterFunc(d, func() { e.tick(gen) })
}

func (e *Engine) cancelPendingLocked() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
	e.timerGen++
}

func (e *Engine) frameDelayLocked() time.Duration {
	rate := e.frameRate
	if rate <= 0 {
		rate = defaultFrameRate
	}
	return time.Duration(math.Round(1000/rate)) * time.Millisecond
}

// tick oynatma döngüsünün tek adımıdır: sıradaki kareyi çözer, çizer ve
// bir sonraki tick'i planlar. Decode hatası veya son kareye ulaşmak
// oynatmayı bitirir; kullanıcı duraklatmasından farklı olarak yeniden
// planlama yapılmaz.
func (e *Engine) tick(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.timerGen || !e.playing || e.clip == nil {
		return
	}
	e.pending = nil

	img, err := e.clip.NextFrame()
	if err != nil {
		e.playing = false
		e.logf("oynatma durdu: kare okunamadı: %v", err)
		return
	}

	if e.viewport != nil {
		e.viewport.Render(img)
	}
	e.current++

	if e.current >= e.frameCount {
		e.playing = false
		return
	}

	e.scheduleLocked(e.frameDelayLocked())
}
