package preview

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// Viewport çözülen kareleri sabit boyutlu bir görüntüleme alanına çizer.
// Kare, en-boy oranı korunarak alana sığdırılır ve ortalanır; tamamlanmış
// görüntü tek seferde takas edilir, yarım çizilmiş kare hiç görünmez.
type Viewport struct {
	mu     sync.Mutex
	width  int
	height int
	frame  *image.RGBA
	gen    uint64
}

// NewViewport verilen piksel boyutlarında görüntüleme alanı oluşturur.
func NewViewport(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Viewport{width: width, height: height}
}

// SetSize görüntüleme alanını yeniden boyutlandırır; mevcut kare korunmaz,
// bir sonraki Render yeni boyutla çizer.
func (v *Viewport) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width >= 1 {
		v.width = width
	}
	if height >= 1 {
		v.height = height
	}
}

// Size mevcut görüntüleme alanı boyutlarını döner.
func (v *Viewport) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// Render kaynağı ölçekleyip ortalar ve görünür kareyi atomik olarak
// değiştirir.
func (v *Viewport) Render(src image.Image) {
	if src == nil {
		return
	}

	v.mu.Lock()
	dw, dh := v.width, v.height
	v.mu.Unlock()

	bounds := src.Bounds()
	fw, fh := bounds.Dx(), bounds.Dy()
	if fw == 0 || fh == 0 {
		return
	}

	scale := fitScale(dw, dh, fw, fh)
	nw := int(float64(fw) * scale)
	nh := int(float64(fh) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	x := (dw - nw) / 2
	y := (dh - nh) / 2

	out := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(out, image.Rect(x, y, x+nw, y+nh), src, bounds, draw.Src, nil)

	v.mu.Lock()
	v.frame = out
	v.gen++
	v.mu.Unlock()
}

// Frame son çizilen kareyi ve kare jenerasyon sayacını döner. Sayaç her
// başarılı Render'da artar; sunum katmanı değişiklik tespiti için kullanır.
func (v *Viewport) Frame() (*image.RGBA, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame, v.gen
}

// fitScale kaynağı alana sığdıran oranı hesaplar: min(dw/fw, dh/fh).
func fitScale(dw, dh, fw, fh int) float64 {
	sw := float64(dw) / float64(fw)
	sh := float64(dh) / float64(fh)
	if sw < sh {
		return sw
	}
	return sh
}

// FormatClock saniyeyi MM:SS biçimine çevirir; negatif değerler 00:00 olur.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
