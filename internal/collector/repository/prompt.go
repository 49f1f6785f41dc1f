package repository

import "fmt"

// BuildExtractPeoplePrompt builds the named-entity extraction prompt. The
// model must answer with a bare JSON array of person names.
func BuildExtractPeoplePrompt(text string) string {
	return fmt.Sprintf(`Eres un sistema de reconocimiento de entidades nombradas.
Extrae todas las personas mencionadas en el siguiente texto de un artículo editorial.

Reglas:
- Devuelve SOLO un array JSON de strings, sin texto adicional ni markdown.
- Incluye únicamente nombres de personas (tipo PERSON), no lugares, marcas ni eventos.
- Usa el nombre tal y como aparece en el texto.
- Si no hay personas, devuelve [].

Texto:
%s`, text)
}
