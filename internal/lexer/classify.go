package lexer

import (
	"clint/internal/source"
)

// Classify разбивает файл на сегменты: код, строковые/символьные литералы,
// комментарии. Один проход слева направо, состояние — текущий режим.
//
// Правила переходов:
//   - в коде: '"' → строка, одинарная кавычка → символ, "//" → строчный
//     комментарий,
//     "/*" → блочный комментарий;
//   - в строке/символе: '\\' экранирует следующий байт, закрывающая кавычка
//     возвращает в код;
//   - строчный комментарий заканчивается перед '\n' (сам '\n' остаётся кодом);
//   - блочный комментарий заканчивается на "*/" (в C без вложенности).
//
// Незакрытая строка или комментарий закрываются неявно на EOF: это не ошибка,
// проверка синтаксиса не входит в задачу классификатора.
func Classify(file *source.File) []Segment {
	cur := NewCursor(file)
	segs := make([]Segment, 0, 16)
	start := cur.Mark()

	flush := func(kind Kind) {
		sp := cur.SpanFrom(start)
		if !sp.Empty() {
			segs = append(segs, Segment{Kind: kind, Span: sp})
		}
		start = cur.Mark()
	}

	for !cur.EOF() {
		switch b := cur.Peek(); b {
		case '"', '\'':
			flush(KindCode)
			cur.Bump() // opening quote
			kind := KindString
			if b == '\'' {
				kind = KindChar
			}
			scanQuoted(&cur, b)
			flush(kind)

		case '/':
			b0, b1, ok := cur.Peek2()
			switch {
			case ok && b0 == '/' && b1 == '/':
				flush(KindCode)
				cur.Bump()
				cur.Bump()
				for !cur.EOF() && cur.Peek() != '\n' {
					cur.Bump()
				}
				flush(KindLineComment)
			case ok && b0 == '/' && b1 == '*':
				flush(KindCode)
				cur.Bump()
				cur.Bump()
				scanBlockComment(&cur)
				flush(KindBlockComment)
			default:
				// одиночный '/' — оператор
				cur.Bump()
			}

		default:
			cur.Bump()
		}
	}
	flush(KindCode)
	return segs
}

// scanQuoted ест байты до незаэкранированной закрывающей кавычки или EOF.
func scanQuoted(cur *Cursor, quote byte) {
	for !cur.EOF() {
		b := cur.Bump()
		if b == '\\' {
			if !cur.EOF() {
				cur.Bump()
			}
			continue
		}
		if b == quote {
			return
		}
	}
}

func scanBlockComment(cur *Cursor) {
	for !cur.EOF() {
		if b0, b1, ok := cur.Peek2(); ok && b0 == '*' && b1 == '/' {
			cur.Bump()
			cur.Bump()
			return
		}
		cur.Bump()
	}
}
