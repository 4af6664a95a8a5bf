package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Стилистические правила
	StyleInfo           Code = 1000
	StylePointerSpacing Code = 1001 // '*' не привязана к имени переменной
	StyleBracePlacement Code = 1002 // '{' не на своей строке

	// Ошибки I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	StyleInfo:           "Style information",
	StylePointerSpacing: "Pointer '*' must bind to the variable name",
	StyleBracePlacement: "Opening '{' must be on its own line",
	IOLoadFileError:     "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("STY%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
