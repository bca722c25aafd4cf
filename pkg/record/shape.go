package record

// Shape is the layout of raw input: the nested canonical form or the flat
// form the wizards produce.
type Shape int

const (
	ShapeFlat Shape = iota
	ShapeNested
)

func (s Shape) String() string {
	if s == ShapeNested {
		return "nested"
	}
	return "flat"
}

var plantaSecoes = []string{"identificacao", "detalhes_plantio", "produtividade", "status"}

// DetectPlantaShape reports nested when any section key holds an object.
func DetectPlantaShape(raw map[string]any) Shape {
	for _, k := range plantaSecoes {
		if _, ok := raw[k].(map[string]any); ok {
			return ShapeNested
		}
	}
	return ShapeFlat
}

// DetectFuncionarioShape reports nested when endereco is an object.
func DetectFuncionarioShape(raw map[string]any) Shape {
	if _, ok := raw["endereco"].(map[string]any); ok {
		return ShapeNested
	}
	return ShapeFlat
}
