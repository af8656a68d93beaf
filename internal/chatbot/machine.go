package chatbot

import (
	"fmt"
	"strings"
)

// StateKind is the screen the dialogue is on
type StateKind string

const (
	Root         StateKind = "root"
	CategoryList StateKind = "category_list"
	QuestionList StateKind = "question_list"
	AnswerView   StateKind = "answer_view"
)

// State is the dialogue position. Category is the category the user last
// entered, kept while browsing answers so "back to category" can return.
type State struct {
	Kind     StateKind `json:"kind"`
	Category string    `json:"category,omitempty"`
	Question int       `json:"question,omitempty"`
}

// EventKind is a user action
type EventKind string

const (
	EventOpen           EventKind = "open"
	EventSelectCategory EventKind = "select_category"
	EventSelectQuestion EventKind = "select_question"
	EventBackToCategory EventKind = "back_to_category"
	EventBackToMain     EventKind = "back_to_main"
	EventFreeText       EventKind = "free_text"
	EventShowCategories EventKind = "show_categories"
)

// Event is one user action with its argument
type Event struct {
	Kind     EventKind `json:"kind"`
	Category string    `json:"category,omitempty"`
	Question int       `json:"question,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// Role is who wrote a message
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Option is a button offered under a bot message
type Option struct {
	Label string `json:"label"`
	Event Event  `json:"event"`
}

// Message is one transcript line
type Message struct {
	Role    Role     `json:"role"`
	Text    string   `json:"text"`
	Options []Option `json:"options,omitempty"`
}

const (
	MsgWelcome       = "¡Hola! Soy TruthLens AI, tu asistente para verificar contenido. ¿En qué puedo ayudarte hoy?"
	MsgPickCategory  = "Selecciona una categoría:"
	MsgAllCategories = "¡Perfecto! Te muestro todas las categorías disponibles:"
	MsgBackToMain    = "¡Hola de nuevo! ¿En qué más puedo ayudarte?"
	MsgRelated       = "También te puede interesar:"
	MsgMoreHelp      = "¿Necesitas más ayuda?"
	MsgDefaultReply  = "Gracias por tu consulta. Te recomiendo revisar nuestras preguntas frecuentes organizadas por categorías, donde probablemente encuentres la información que buscas."
	msgHowItWorks    = "TruthLens funciona analizando contenido usando algoritmos avanzados de IA. ¿Te gustaría conocer más detalles específicos?"
	msgSecurity      = "La seguridad es nuestra prioridad. Tus archivos se procesan de forma segura y no se almacenan permanentemente. ¿Tienes alguna preocupación específica sobre privacidad?"
	msgPricing       = "TruthLens es gratuito para uso personal y educativo. ¿Te interesa conocer las funcionalidades disponibles?"
	labelAllFromList = "Ver todas las categorías"
	labelMainMenu    = "Menú principal"
	labelBackToMain  = "Volver a categorías principales"
	labelMoreInCat   = "Ver más preguntas de esta categoría"
	labelHomeMenu    = "Volver al menú principal"
	labelShowFAQ     = "Ver preguntas frecuentes"
)

var keywordFallbacks = []struct {
	needles []string
	reply   string
}{
	{[]string{"funciona", "como"}, msgHowItWorks},
	{[]string{"segur", "privacidad"}, msgSecurity},
	{[]string{"gratis", "precio", "costo"}, msgPricing},
}

// Step applies ev to s. Events that do not fit the current state, or that
// name an unknown category or question, leave the state unchanged and
// produce no messages.
func Step(s State, ev Event) (State, []Message) {
	switch ev.Kind {
	case EventOpen:
		return State{Kind: CategoryList}, []Message{
			{Role: RoleBot, Text: MsgWelcome},
			categoryMenu(),
		}

	case EventShowCategories:
		if s.Kind == Root {
			return s, nil
		}
		return State{Kind: CategoryList, Category: s.Category}, []Message{categoryMenu()}

	case EventSelectCategory:
		if s.Kind == Root {
			return s, nil
		}
		return enterCategory(s, ev.Category)

	case EventSelectQuestion:
		if s.Kind == Root || ev.Question < 0 || ev.Question >= len(FAQs) {
			return s, nil
		}
		return answer(s, ev.Question)

	case EventBackToCategory:
		if s.Kind != AnswerView {
			return s, nil
		}
		if s.Category == "" {
			return State{Kind: CategoryList}, []Message{categoryMenu()}
		}
		return enterCategory(s, s.Category)

	case EventBackToMain:
		switch s.Kind {
		case QuestionList:
			return State{Kind: CategoryList}, []Message{
				{Role: RoleUser, Text: labelAllFromList},
				{Role: RoleBot, Text: MsgAllCategories},
				categoryMenu(),
			}
		case AnswerView:
			return State{Kind: CategoryList}, []Message{
				{Role: RoleUser, Text: labelMainMenu},
				{Role: RoleBot, Text: MsgBackToMain},
				categoryMenu(),
			}
		}
		return s, nil

	case EventFreeText:
		text := strings.TrimSpace(ev.Text)
		if s.Kind == Root || text == "" {
			return s, nil
		}
		return s, []Message{
			{Role: RoleUser, Text: text},
			{Role: RoleBot, Text: Reply(text)},
			{Role: RoleBot, Text: MsgMoreHelp, Options: []Option{
				{Label: labelShowFAQ, Event: Event{Kind: EventShowCategories}},
			}},
		}
	}
	return s, nil
}

// Reply answers free text: the first FAQ with a keyword contained in the
// lowercased message wins, then the broad fallbacks, then the default.
func Reply(text string) string {
	lower := strings.ToLower(text)
	for _, faq := range FAQs {
		for _, kw := range faq.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return faq.Answer
			}
		}
	}
	for _, fb := range keywordFallbacks {
		for _, n := range fb.needles {
			if strings.Contains(lower, n) {
				return fb.reply
			}
		}
	}
	return MsgDefaultReply
}

func categoryMenu() Message {
	opts := make([]Option, 0, len(Categories))
	for _, c := range Categories {
		opts = append(opts, Option{Label: c.Title, Event: Event{Kind: EventSelectCategory, Category: c.ID}})
	}
	return Message{Role: RoleBot, Text: MsgPickCategory, Options: opts}
}

func enterCategory(s State, id string) (State, []Message) {
	cat, ok := CategoryByID(id)
	if !ok {
		return s, nil
	}

	opts := make([]Option, 0, len(cat.Questions)+1)
	for _, idx := range cat.Questions {
		opts = append(opts, Option{Label: FAQs[idx].Question, Event: Event{Kind: EventSelectQuestion, Question: idx}})
	}
	opts = append(opts, Option{Label: labelBackToMain, Event: Event{Kind: EventBackToMain}})

	return State{Kind: QuestionList, Category: cat.ID}, []Message{
		{Role: RoleUser, Text: cat.Title},
		{Role: RoleBot, Text: fmt.Sprintf("Aquí tienes las preguntas sobre %s:", strings.ToLower(cat.Title)), Options: opts},
	}
}

func answer(s State, idx int) (State, []Message) {
	faq := FAQs[idx]

	var opts []Option
	for _, r := range faq.Related {
		opts = append(opts, Option{Label: FAQs[r].Question, Event: Event{Kind: EventSelectQuestion, Question: r}})
	}
	opts = append(opts,
		Option{Label: labelMoreInCat, Event: Event{Kind: EventBackToCategory}},
		Option{Label: labelHomeMenu, Event: Event{Kind: EventBackToMain}},
	)

	follow := ""
	if len(faq.Related) > 0 {
		follow = MsgRelated
	}

	return State{Kind: AnswerView, Category: s.Category, Question: idx}, []Message{
		{Role: RoleUser, Text: faq.Question},
		{Role: RoleBot, Text: faq.Answer},
		{Role: RoleBot, Text: follow, Options: opts},
	}
}
