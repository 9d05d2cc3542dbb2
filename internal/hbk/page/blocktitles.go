package page

// blockTitles maps a heading's verbatim (Russian or English) text to the
// canonical block key callers look up with parsedPage.blockContent.
var blockTitles = map[string]string{
	"Имя":                     "name",
	"Name":                    "name",
	"Синтаксис":               "syntax",
	"Syntax":                  "syntax",
	"Параметры":               "parameters",
	"Parameters":              "parameters",
	"Описание":                "description",
	"Description":             "description",
	"Возвращаемое значение":   "return_value",
	"Return value":            "return_value",
	"Значение":                "value",
	"Value":                   "value",
	"Пример":                  "example",
	"Example":                 "example",
	"Доступность":             "availability",
	"Availability":            "availability",
	"Замечание":               "note",
	"Note":                    "note",
	"См. также":               "see_also",
	"See also":                "see_also",
	"Конструкторы":            "constructors",
	"Constructors":            "constructors",
	"Методы":                  "methods",
	"Methods":                 "methods",
	"Свойства":                "properties",
	"Properties":              "properties",
}
