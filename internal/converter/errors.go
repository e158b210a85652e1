package converter

import (
	"errors"
	"fmt"
)

// ErrDurationUnknown video süresi bilinmeden kırpma istendiğinde döner.
var ErrDurationUnknown = errors.New(
	"video süresi alınamadı; kırpma parametreleri için süre bilgisi gerekli.\n" +
		"Öneri: kırpma değerlerini 0 yapıp yeniden deneyin veya başka bir dosya kullanın")

// InvalidTrimRangeError etkili dönüşüm penceresi boş ya da negatif
// olduğunda döner. En sık görülen kullanıcı hatası olduğu için mesaj tek
// başına düzeltme yapmaya yetecek sayıları içerir.
type InvalidTrimRangeError struct {
	Duration  float64
	SkipStart float64
	SkipEnd   float64
}

func (e *InvalidTrimRangeError) Error() string {
	effective := (e.Duration - e.SkipEnd) - e.SkipStart
	return fmt.Sprintf(
		"kırpma süresi video uzunluğunu aşıyor!\n"+
			"  Video süresi: %.2f sn\n"+
			"  Baştan atla:  %.2f sn\n"+
			"  Sondan kes:   %.2f sn\n"+
			"  Kalan süre:   %.2f sn\n"+
			"Kırpma değerlerini küçültüp yeniden deneyin",
		e.Duration, e.SkipStart, e.SkipEnd, effective)
}

// EncoderLaunchError encoder süreci hiç başlatılamadığında döner (örneğin
// ffmpeg ikilisi yok).
type EncoderLaunchError struct {
	Err error
}

func (e *EncoderLaunchError) Error() string {
	return fmt.Sprintf("encoder başlatılamadı: %v", e.Err)
}

func (e *EncoderLaunchError) Unwrap() error { return e.Err }

// EncoderExitError encoder sıfır dışı kodla çıktığında ya da sıfır koda
// rağmen çıktı dosyası oluşmadığında döner. Sıfır çıkış koduna tek başına
// güvenilmez.
type EncoderExitError struct {
	ExitCode      int
	OutputMissing bool
}

func (e *EncoderExitError) Error() string {
	if e.OutputMissing {
		return fmt.Sprintf("encoder %d koduyla çıktı ancak çıktı dosyası oluşmadı", e.ExitCode)
	}
	return fmt.Sprintf("encoder hata koduyla çıktı: %d", e.ExitCode)
}
