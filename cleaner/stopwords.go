package cleaner

// defaultStopwords returns the built-in stopword list for a language.
// Anything without a dedicated list gets the English set.
func defaultStopwords(language string) []string {
	if language == "es" {
		return spanishStopwords
	}
	return englishStopwords
}

var englishStopwords = []string{
	"the", "is", "in", "at", "which", "on", "and", "a", "an", "of",
	"to", "for", "with", "that", "this", "it", "as", "by", "from",
	"or", "but", "be", "are", "was", "were", "has", "have", "had",
	"not", "can", "will", "would", "should", "could",
}

var spanishStopwords = []string{
	"el", "la", "los", "las", "un", "una", "unos", "unas", "de", "del",
	"a", "y", "en", "que", "con", "por", "para", "es", "al", "lo",
	"como", "más", "pero", "sus", "le", "ya", "o", "sí", "no", "se",
	"ha", "me", "mi", "te", "tu", "su", "yo", "él", "ella", "nos",
	"vosotros", "ellos", "ellas", "este", "esta", "estos", "estas",
	"eso", "esa", "esos", "esas", "aquí", "allí", "muy", "también",
	"porque", "cuando", "donde", "desde", "hasta", "entre", "sobre",
	"sin", "tras", "durante", "antes", "después", "todo", "todos",
	"todas", "cada", "cual", "cuales", "quien", "quienes", "cuyo",
	"cuyos", "cuyas", "qué", "cómo", "cuándo", "cuánto", "cuántos",
	"cuántas", "dónde", "adónde", "porqué", "pues", "entonces",
	"ahora", "bien", "mal", "aun", "aunque", "además", "incluso",
	"sino", "todavía", "aún", "quizá", "quizás", "según", "igual",
	"mismo", "propio", "tampoco", "ningún", "ninguna", "ninguno",
	"ningunas", "ningunos",
}
