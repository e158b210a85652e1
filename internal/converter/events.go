package converter

// Event bir dönüşüm işinin çalışma sırasında yayınladığı olaylardır.
// Worker goroutine olayları sürecin yazdığı sırada kanala koyar; tüketici
// tek olmalı ve olayları kendi olay döngüsünde işlemelidir.
type Event interface {
	conversionEvent()
}

// LogLine encoder'ın tanı akışından gelen tek bir boş olmayan satırdır.
type LogLine struct {
	Text string
}

// Progress [0,100] aralığında ilerleme yüzdesidir; 0.5 puanlık eşik
// altındaki değişimler yayınlanmaz.
type Progress struct {
	Percent float64
}

// Result işin tek seferlik uç olayıdır: başarıda Output doludur, hatada
// Err doludur. Result yayınlandıktan sonra kanal kapanır.
type Result struct {
	Output string
	Err    error
}

func (LogLine) conversionEvent()  {}
func (Progress) conversionEvent() {}
func (Result) conversionEvent()   {}
