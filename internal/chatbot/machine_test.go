package chatbot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetIsConsistent(t *testing.T) {
	require.Len(t, Categories, 5)
	require.Len(t, FAQs, 12)
	for _, c := range Categories {
		for _, q := range c.Questions {
			assert.Less(t, q, len(FAQs), "category %s", c.ID)
		}
	}
	for i, f := range FAQs {
		for _, r := range f.Related {
			assert.Less(t, r, len(FAQs), "faq %d", i)
		}
	}
}

func TestOpenShowsWelcomeAndCategories(t *testing.T) {
	s, msgs := Step(State{Kind: Root}, Event{Kind: EventOpen})

	assert.Equal(t, State{Kind: CategoryList}, s)
	require.Len(t, msgs, 2)
	assert.Equal(t, MsgWelcome, msgs[0].Text)
	require.Len(t, msgs[1].Options, 5)
	assert.Equal(t, Event{Kind: EventSelectCategory, Category: "funcionamiento"}, msgs[1].Options[0].Event)
}

func TestCategoryToAnswerAndBack(t *testing.T) {
	s, _ := Step(State{Kind: Root}, Event{Kind: EventOpen})

	s, msgs := Step(s, Event{Kind: EventSelectCategory, Category: "seguridad"})
	assert.Equal(t, State{Kind: QuestionList, Category: "seguridad"}, s)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "Aquí tienes las preguntas sobre seguridad y privacidad:", msgs[1].Text)

	var labels []string
	for _, o := range msgs[1].Options {
		labels = append(labels, o.Label)
	}
	assert.Equal(t, []string{FAQs[2].Question, FAQs[7].Question, labelBackToMain}, labels)

	s, msgs = Step(s, Event{Kind: EventSelectQuestion, Question: 2})
	assert.Equal(t, State{Kind: AnswerView, Category: "seguridad", Question: 2}, s)
	assert.Equal(t, FAQs[2].Answer, msgs[1].Text)
	assert.Equal(t, MsgRelated, msgs[2].Text)
	assert.Equal(t, FAQs[7].Question, msgs[2].Options[0].Label)

	s, msgs = Step(s, Event{Kind: EventBackToCategory})
	assert.Equal(t, State{Kind: QuestionList, Category: "seguridad"}, s)
	assert.Equal(t, "Seguridad y Privacidad", msgs[0].Text)
}

func TestAnswerWithoutRelated(t *testing.T) {
	s := State{Kind: QuestionList, Category: "acceso"}
	s, msgs := Step(s, Event{Kind: EventSelectQuestion, Question: 11})

	assert.Equal(t, AnswerView, s.Kind)
	require.Len(t, msgs, 3)
	assert.Empty(t, msgs[2].Text)
	assert.Len(t, msgs[2].Options, 2)
}

func TestBackToMainMessagesDependOnOrigin(t *testing.T) {
	_, fromList := Step(State{Kind: QuestionList, Category: "archivos"}, Event{Kind: EventBackToMain})
	require.Len(t, fromList, 3)
	assert.Equal(t, MsgAllCategories, fromList[1].Text)

	s, fromAnswer := Step(State{Kind: AnswerView, Category: "archivos", Question: 1}, Event{Kind: EventBackToMain})
	assert.Equal(t, State{Kind: CategoryList}, s)
	assert.Equal(t, MsgBackToMain, fromAnswer[1].Text)
}

func TestBackToCategoryWithoutCategoryShowsMenu(t *testing.T) {
	s, msgs := Step(State{Kind: AnswerView, Question: 4}, Event{Kind: EventBackToCategory})
	assert.Equal(t, State{Kind: CategoryList}, s)
	require.Len(t, msgs, 1)
	assert.Equal(t, MsgPickCategory, msgs[0].Text)
}

func TestInvalidEventsAreIgnored(t *testing.T) {
	tests := []struct {
		name string
		s    State
		ev   Event
	}{
		{"closed chat", State{Kind: Root}, Event{Kind: EventSelectCategory, Category: "acceso"}},
		{"unknown category", State{Kind: CategoryList}, Event{Kind: EventSelectCategory, Category: "nope"}},
		{"question out of range", State{Kind: CategoryList}, Event{Kind: EventSelectQuestion, Question: 12}},
		{"negative question", State{Kind: CategoryList}, Event{Kind: EventSelectQuestion, Question: -1}},
		{"back to category from list", State{Kind: QuestionList, Category: "acceso"}, Event{Kind: EventBackToCategory}},
		{"back to main from menu", State{Kind: CategoryList}, Event{Kind: EventBackToMain}},
		{"blank text", State{Kind: CategoryList}, Event{Kind: EventFreeText, Text: "   "}},
		{"unknown kind", State{Kind: CategoryList}, Event{Kind: "dance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, msgs := Step(tt.s, tt.ev)
			if diff := cmp.Diff(tt.s, s); diff != "" {
				t.Errorf("state changed (-want +got):\n%s", diff)
			}
			assert.Empty(t, msgs)
		})
	}
}

func TestReplyFirstMatchWins(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"¿Cómo FUNCIONA esto?", FAQs[0].Answer},
		{"subo un PDF", FAQs[1].Answer},
		{"¿es seguro?", FAQs[2].Answer},
		{"¿es gratis?", FAQs[11].Answer},
		{"hay app para móvil", FAQs[9].Answer},
		{"mi resultado salió raro", FAQs[3].Answer},
		{"asegurar", msgSecurity},
		{"el costo", FAQs[11].Answer},
		{"hola", MsgDefaultReply},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Reply(tt.in))
		})
	}
}

func TestFreeTextKeepsState(t *testing.T) {
	start := State{Kind: QuestionList, Category: "acceso"}
	s, msgs := Step(start, Event{Kind: EventFreeText, Text: " xyz "})

	assert.Equal(t, start, s)
	require.Len(t, msgs, 3)
	assert.Equal(t, "xyz", msgs[0].Text)
	assert.Equal(t, MsgDefaultReply, msgs[1].Text)
	assert.Equal(t, EventShowCategories, msgs[2].Options[0].Event.Kind)
}

func TestConversationTranscript(t *testing.T) {
	c := NewConversation()
	assert.Empty(t, c.Send(Event{Kind: EventSelectCategory, Category: "acceso"}))

	c.Send(Event{Kind: EventOpen})
	c.Send(Event{Kind: EventSelectCategory, Category: "acceso"})
	assert.Len(t, c.Transcript(), 4)
	assert.Equal(t, QuestionList, c.State().Kind)

	c.Close()
	assert.Equal(t, Root, c.State().Kind)

	c.Send(Event{Kind: EventOpen})
	assert.Len(t, c.Transcript(), 2)
}
