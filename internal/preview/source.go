package preview

import (
	"image"
)

// ClipInfo bir video klibinin decode oturumu için gerekli özetini tutar.
type ClipInfo struct {
	Path       string
	FrameRate  float64 // kare/saniye; kaynak 0 veya negatif bildirirse Engine 30'a düşer
	FrameCount int
}

// Duration toplam süreyi saniye cinsinden döner.
func (i ClipInfo) Duration() float64 {
	if i.FrameRate <= 0 {
		return 0
	}
	return float64(i.FrameCount) / i.FrameRate
}

// Clip tek bir video dosyası için açılmış decode oturumudur.
// Her çağrı hata dönebilir; Close birden fazla kez çağrılabilmelidir.
type Clip interface {
	// Info klip bilgilerini döner.
	Info() ClipInfo
	// SeekFrame decode imlecini verilen kareye taşır ve o kareyi çözer.
	SeekFrame(frame int) (image.Image, error)
	// NextFrame imleçteki sıradaki kareyi çözer.
	NextFrame() (image.Image, error)
	// Close oturumu ve altındaki kaynakları serbest bırakır.
	Close() error
}

// Source video dosyalarını decode oturumuna açan soyutlamadır.
type Source interface {
	Open(path string) (Clip, error)
}
