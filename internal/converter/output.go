package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConflictOverwrite = "overwrite"
	ConflictSkip      = "skip"
	ConflictVersioned = "versioned"
)

// BuildOutputPath GIF çıktı yolunu üretir: aynı dizin, aynı gövde adı,
// .gif uzantısı. outputDir veya customName verilirse onlar kullanılır.
func BuildOutputPath(inputPath, outputDir, customName string) string {
	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	if customName != "" {
		baseName = customName
	}

	outputFile := baseName + ".gif"
	if outputDir != "" {
		return filepath.Join(outputDir, outputFile)
	}
	return filepath.Join(filepath.Dir(inputPath), outputFile)
}

// NormalizeConflictPolicy geçersiz değerlerde boş string, boş değerde
// varsayılan (overwrite) döner. Orijinal davranış mevcut GIF'in üzerine
// yazmaktır.
func NormalizeConflictPolicy(policy string) string {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case ConflictOverwrite, "":
		return ConflictOverwrite
	case ConflictSkip:
		return ConflictSkip
	case ConflictVersioned:
		return ConflictVersioned
	default:
		return ""
	}
}

// ResolveOutputPathConflict hedef dosya adı çakışmasını verilen policy'ye
// göre çözer. skip=true dönerse ilgili iş atlanmalıdır.
func ResolveOutputPathConflict(path, policy string) (resolvedPath string, skip bool, err error) {
	normalized := NormalizeConflictPolicy(policy)
	if normalized == "" {
		return "", false, fmt.Errorf("gecersiz on-conflict politikasi: %s", policy)
	}

	_, statErr := os.Stat(path)
	if statErr != nil {
		if errors.Is(statErr, os.ErrNotExist) {
			return path, false, nil
		}
		return "", false, statErr
	}

	switch normalized {
	case ConflictOverwrite:
		return path, false, nil
	case ConflictSkip:
		return path, true, nil
	default: // versioned
		ext := filepath.Ext(path)
		base := strings.TrimSuffix(path, ext)
		for i := 1; i < 100000; i++ {
			candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
			if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
				return candidate, false, nil
			} else if err != nil {
				return "", false, err
			}
		}
		return "", false, fmt.Errorf("uygun versioned dosya adi bulunamadi")
	}
}
