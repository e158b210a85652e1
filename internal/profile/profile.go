package profile

import (
	"fmt"
	"sort"
	"strings"
)

// Preset bir GIF dönüşümünün filtre zinciri parametrelerini tutar.
type Preset struct {
	Name        string
	Description string
	FPS         int // çıktı kare oranı
	Width       int // çıktı genişliği (yükseklik oranla hesaplanır)
	MaxColors   int // palet rengi sayısı
	BayerScale  int // bayer dithering gücü (0-5)
}

// Varsayılan preset orijinal sabitleri taşır: 8 fps, 240 px genişlik,
// 16 renk palet, bayer gücü 3.
var builtins = map[string]Preset{
	"default": {
		Name:        "default",
		Description: "Dengeli boyut/kalite (8 fps, 240px, 16 renk)",
		FPS:         8,
		Width:       240,
		MaxColors:   16,
		BayerScale:  3,
	},
	"mini": {
		Name:        "mini",
		Description: "En küçük dosya boyutu (6 fps, 160px, 8 renk)",
		FPS:         6,
		Width:       160,
		MaxColors:   8,
		BayerScale:  4,
	},
	"smooth": {
		Name:        "smooth",
		Description: "Akıcı hareket (15 fps, 320px, 32 renk)",
		FPS:         15,
		Width:       320,
		MaxColors:   32,
		BayerScale:  2,
	},
	"hd": {
		Name:        "hd",
		Description: "Yüksek çözünürlük (12 fps, 480px, 64 renk)",
		FPS:         12,
		Width:       480,
		MaxColors:   64,
		BayerScale:  2,
	},
}

// Default varsayılan preset'i döner.
func Default() Preset {
	return builtins["default"]
}

// Resolve isimden preset döner; boş isim varsayılanı seçer.
func Resolve(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default(), nil
	}
	p, ok := builtins[key]
	if !ok {
		return Preset{}, fmt.Errorf("preset bulunamadı: %s (mevcut: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names built-in preset isimlerini alfabetik döner.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All tüm preset'leri isim sırasıyla döner.
func All() []Preset {
	presets := make([]Preset, 0, len(builtins))
	for _, name := range Names() {
		presets = append(presets, builtins[name])
	}
	return presets
}
