package source

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены.
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

// restoreCRLF — обратная операция к normalizeCRLF: каждый \n снова
// становится \r\n. Одиночные \r не трогались при загрузке и не трогаются
// здесь.
func restoreCRLF(content []byte) []byte {
	out := make([]byte, 0, len(content)+len(content)/16)
	for _, b := range content {
		if b == '\n' {
			out = append(out, '\r', '\n')
		} else {
			out = append(out, b)
		}
	}
	return out
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл - одна строка
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	// hi — индекс последнего '\n' строго перед off; сам '\n' относится к
	// строке, которую он завершает.
	line := hi + 1 // индекс строки (0-based)

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}

	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath resolves p against the current working directory.
func AbsolutePath(p string) (string, error) {
	return filepath.Abs(p)
}

// RelativePath makes p relative to baseDir; paths that escape the base fall
// back to the absolute form.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, abs)
	if err != nil {
		return abs, nil
	}
	if strings.HasPrefix(rel, "..") {
		return abs, nil
	}
	return rel, nil
}

// BaseName returns the last path element.
func BaseName(p string) string {
	return filepath.Base(p)
}

// IsCSource reports whether the path has one of the extensions the linter
// processes (.c or .h, case-insensitive).
func IsCSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c", ".h":
		return true
	}
	return false
}

// Cwd returns the current working directory, or "." on failure.
func Cwd() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
