package models

// Example is a sample headline and body offered to the user
type Example struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Examples is the document served at /static/examples.json
type Examples struct {
	FakeExamples []Example `json:"fake_examples"`
	RealExamples []Example `json:"real_examples"`
}

// All returns fake examples followed by real ones.
func (e Examples) All() []Example {
	all := make([]Example, 0, len(e.FakeExamples)+len(e.RealExamples))
	all = append(all, e.FakeExamples...)
	all = append(all, e.RealExamples...)
	return all
}

// FallbackExamples is used when the examples document cannot be fetched.
var FallbackExamples = Examples{
	FakeExamples: []Example{
		{
			Title:   "¡INCREÍBLE! Médicos ocultan cura milagrosa del cáncer",
			Content: "Los médicos no quieren que sepas este truco secreto que cura el cáncer en solo 3 días...",
		},
	},
	RealExamples: []Example{
		{
			Title:   "Nuevo tratamiento para diabetes tipo 2 muestra resultados prometedores",
			Content: "Investigadores de la Universidad de Harvard publicaron en Nature Medicine...",
		},
	},
}
