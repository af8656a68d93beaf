package chatbot

// Category groups FAQ entries under a heading
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Questions   []int  `json:"questions"`
}

// FAQ is one question with its canned answer
type FAQ struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
	Related  []int    `json:"related"`
}

// Categories in menu order.
var Categories = []Category{
	{
		ID:          "funcionamiento",
		Title:       "Funcionamiento de TruthLens",
		Description: "Cómo funciona la plataforma",
		Icon:        "fa-cogs",
		Questions:   []int{0, 3, 8, 10},
	},
	{
		ID:          "archivos",
		Title:       "Tipos de Archivos",
		Description: "Qué archivos puedes analizar",
		Icon:        "fa-file-alt",
		Questions:   []int{1, 4, 6},
	},
	{
		ID:          "seguridad",
		Title:       "Seguridad y Privacidad",
		Description: "Protección de tus datos",
		Icon:        "fa-shield-alt",
		Questions:   []int{2, 7},
	},
	{
		ID:          "resultados",
		Title:       "Interpretación de Resultados",
		Description: "Cómo entender los análisis",
		Icon:        "fa-chart-line",
		Questions:   []int{3, 5, 10},
	},
	{
		ID:          "acceso",
		Title:       "Acceso y Disponibilidad",
		Description: "Cómo y dónde usar TruthLens",
		Icon:        "fa-mobile-alt",
		Questions:   []int{9, 11},
	},
}

// FAQs indexed by the numbers used in Category.Questions and FAQ.Related.
// Keyword order matters: free text matches the first entry with any hit.
var FAQs = []FAQ{
	{
		Question: "¿Cómo funciona TruthLens?",
		Answer:   "TruthLens utiliza algoritmos avanzados de inteligencia artificial y procesamiento de lenguaje natural para analizar el contenido y detectar posibles noticias falsas o desinformación. El sistema evalúa múltiples factores como la coherencia, fuentes, y patrones lingüísticos.",
		Keywords: []string{"funciona", "como", "algoritmo", "ia", "inteligencia artificial"},
		Related:  []int{8, 10, 3},
	},
	{
		Question: "¿Qué tipos de archivos puedo analizar?",
		Answer:   "Puedes analizar una amplia variedad de contenido: archivos de texto (.txt, .doc, .docx), documentos PDF, imágenes con texto (usando OCR), y enlaces web de artículos o publicaciones públicas en redes sociales.",
		Keywords: []string{"archivos", "tipos", "formatos", "pdf", "imagen", "texto"},
		Related:  []int{4, 6},
	},
	{
		Question: "¿Es seguro subir mis archivos?",
		Answer:   "Absolutamente. Tus archivos se procesan de forma segura utilizando encriptación de extremo a extremo. No se almacenan permanentemente en nuestros servidores y se eliminan automáticamente después del análisis.",
		Keywords: []string{"seguro", "seguridad", "privacidad", "archivos"},
		Related:  []int{7},
	},
	{
		Question: "¿Qué significa el nivel de confianza?",
		Answer:   "El nivel de confianza es un porcentaje que indica la probabilidad de que el contenido sea verdadero según nuestro análisis de IA. Valores altos (>80%) sugieren contenido confiable, mientras que valores bajos (<40%) indican posible desinformación.",
		Keywords: []string{"confianza", "porcentaje", "nivel", "resultado"},
		Related:  []int{0, 5, 10},
	},
	{
		Question: "¿TruthLens puede detectar noticias falsas en imágenes?",
		Answer:   "Sí, TruthLens utiliza tecnología OCR (reconocimiento óptico de caracteres) para extraer texto de imágenes y luego aplica análisis semántico y verificación de hechos al contenido extraído.",
		Keywords: []string{"imágenes", "ocr", "texto", "fotos", "reconocimiento"},
		Related:  []int{1, 8},
	},
	{
		Question: "¿Qué hago si el resultado es dudoso?",
		Answer:   "Si obtienes un resultado con confianza media (40-80%), te recomendamos: 1) Verificar en fuentes adicionales confiables, 2) Consultar fact-checkers reconocidos, 3) Buscar la fuente original de la información, y 4) No compartir hasta estar seguro.",
		Keywords: []string{"dudoso", "resultado", "verificar", "que hacer"},
		Related:  []int{3, 10},
	},
	{
		Question: "¿Puedo analizar enlaces de redes sociales?",
		Answer:   "Sí, puedes analizar enlaces de publicaciones públicas en redes sociales como Twitter, Facebook, Instagram y LinkedIn, siempre que el contenido sea accesible públicamente y no requiera autenticación.",
		Keywords: []string{"redes sociales", "enlaces", "twitter", "facebook", "instagram"},
		Related:  []int{1, 4},
	},
	{
		Question: "¿TruthLens almacena mis datos?",
		Answer:   "No almacenamos tus datos personales ni el contenido que analizas. Toda la información se procesa temporalmente en memoria durante el análisis y se elimina inmediatamente después. Solo mantenemos estadísticas anónimas para mejorar el servicio.",
		Keywords: []string{"almacena", "datos", "guarda", "información"},
		Related:  []int{2},
	},
	{
		Question: "¿Qué tecnologías utiliza TruthLens?",
		Answer:   "TruthLens combina múltiples tecnologías: modelos de lenguaje natural (NLP), aprendizaje automático (ML), análisis semántico, verificación cruzada de fuentes, y algoritmos de detección de patrones para proporcionar análisis precisos.",
		Keywords: []string{"tecnología", "nlp", "machine learning", "algoritmos"},
		Related:  []int{0, 4},
	},
	{
		Question: "¿Puedo usar TruthLens desde mi móvil?",
		Answer:   "¡Por supuesto! TruthLens está completamente optimizado para dispositivos móviles. Puedes acceder desde cualquier navegador web en tu smartphone o tablet con la misma funcionalidad que en escritorio.",
		Keywords: []string{"móvil", "celular", "smartphone", "tablet", "dispositivos"},
		Related:  []int{11},
	},
	{
		Question: "¿Qué tipo de resultados obtendré?",
		Answer:   "Recibirás un análisis completo que incluye: nivel de confianza (0-100%), clasificación del contenido (Verdadero/Falso/Dudoso), explicación del análisis, fuentes consultadas si están disponibles, y recomendaciones específicas para verificar la información.",
		Keywords: []string{"resultados", "análisis", "clasificación", "explicación"},
		Related:  []int{3, 5},
	},
	{
		Question: "¿TruthLens es gratuito?",
		Answer:   "Sí, TruthLens es completamente gratuito para uso personal y educativo. Ofrecemos análisis ilimitados sin costo alguno como parte de nuestro compromiso con la lucha contra la desinformación.",
		Keywords: []string{"gratuito", "gratis", "precio", "costo", "free"},
		Related:  nil,
	},
}

// CategoryByID looks a category up by its ID.
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
