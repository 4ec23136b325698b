package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testQuestions builds n valid questions where the correct answer is always A.
func testQuestions(n int) []Question {
	questions := make([]Question, n)
	for i := range questions {
		questions[i] = Question{
			ID:   i + 1,
			Text: "question text",
			Options: map[OptionKey]string{
				OptionA: "right",
				OptionB: "wrong",
				OptionC: "wrong",
				OptionD: "wrong",
			},
			CorrectAnswer: OptionA,
			Explanation:   "A is right",
		}
	}
	return questions
}

func TestNewSession(t *testing.T) {
	t.Run("starts active with full budget and no answers", func(t *testing.T) {
		session, err := NewSession(testQuestions(30), 1800, Document{FileName: "algebra.pdf"})
		require.NoError(t, err)

		assert.Equal(t, SessionActive, session.State)
		assert.Equal(t, 1800, session.Remaining)
		assert.Equal(t, 1800, session.LimitSeconds)
		assert.Empty(t, session.Answers)
		assert.Len(t, session.Questions, 30)
		assert.Equal(t, "algebra.pdf", session.Source.FileName)
	})

	t.Run("rejects empty question set", func(t *testing.T) {
		_, err := NewSession(nil, 1800, Document{})
		assert.ErrorIs(t, err, ErrNoQuestions)
	})

	t.Run("rejects non-positive time limit", func(t *testing.T) {
		_, err := NewSession(testQuestions(1), 0, Document{})
		assert.ErrorIs(t, err, ErrInvalidTimeLimit)
	})
}

func TestSelectAnswer(t *testing.T) {
	t.Run("sets and overwrites answers while active", func(t *testing.T) {
		session, err := NewSession(testQuestions(3), 60, Document{})
		require.NoError(t, err)

		applied, err := session.SelectAnswer(0, OptionB)
		require.NoError(t, err)
		assert.True(t, applied)

		applied, err = session.SelectAnswer(0, OptionA)
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, OptionA, session.Answers[0])
	})

	t.Run("is a no-op after finish", func(t *testing.T) {
		session, err := NewSession(testQuestions(3), 60, Document{})
		require.NoError(t, err)
		_, err = session.SelectAnswer(1, OptionC)
		require.NoError(t, err)

		session.Finish()

		applied, err := session.SelectAnswer(1, OptionA)
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, OptionC, session.Answers[1], "answers map must be unchanged")
		assert.Equal(t, SessionFinished, session.State)
	})

	t.Run("rejects invalid option keys", func(t *testing.T) {
		session, err := NewSession(testQuestions(3), 60, Document{})
		require.NoError(t, err)

		_, err = session.SelectAnswer(0, OptionKey("E"))
		assert.ErrorIs(t, err, ErrInvalidOptionKey)
	})

	t.Run("rejects out-of-range indexes", func(t *testing.T) {
		session, err := NewSession(testQuestions(3), 60, Document{})
		require.NoError(t, err)

		_, err = session.SelectAnswer(3, OptionA)
		assert.ErrorIs(t, err, ErrQuestionIndexOutOfRange)

		_, err = session.SelectAnswer(-1, OptionA)
		assert.ErrorIs(t, err, ErrQuestionIndexOutOfRange)
	})
}

func TestTick(t *testing.T) {
	t.Run("counts down and finishes exactly at zero", func(t *testing.T) {
		session, err := NewSession(testQuestions(1), 3, Document{})
		require.NoError(t, err)

		assert.False(t, session.Tick())
		assert.Equal(t, 2, session.Remaining)
		assert.Equal(t, SessionActive, session.State)

		assert.False(t, session.Tick())
		assert.True(t, session.Tick(), "the tick reaching zero reports the transition")
		assert.Equal(t, 0, session.Remaining)
		assert.Equal(t, SessionFinished, session.State)
	})

	t.Run("is idempotent past zero", func(t *testing.T) {
		session, err := NewSession(testQuestions(1), 1, Document{})
		require.NoError(t, err)

		assert.True(t, session.Tick())
		for i := 0; i < 5; i++ {
			assert.False(t, session.Tick())
		}
		assert.Equal(t, 0, session.Remaining)
	})

	t.Run("does not decrement after manual finish", func(t *testing.T) {
		session, err := NewSession(testQuestions(1), 10, Document{})
		require.NoError(t, err)

		require.True(t, session.Finish())
		assert.False(t, session.Tick())
		assert.Equal(t, 10, session.Remaining, "timer stops on finish")
	})
}

func TestFinish(t *testing.T) {
	t.Run("first finish wins, second is a no-op", func(t *testing.T) {
		session, err := NewSession(testQuestions(1), 60, Document{})
		require.NoError(t, err)

		assert.True(t, session.Finish())
		assert.False(t, session.Finish())
	})

	t.Run("finish after timer exhaustion is a no-op", func(t *testing.T) {
		session, err := NewSession(testQuestions(1), 1, Document{})
		require.NoError(t, err)

		require.True(t, session.Tick())
		assert.False(t, session.Finish())
	})
}

func TestScore(t *testing.T) {
	t.Run("counts only exact matches, unanswered is incorrect", func(t *testing.T) {
		session, err := NewSession(testQuestions(30), 60, Document{})
		require.NoError(t, err)

		// 20 correct answers, 10 left unanswered.
		for i := 0; i < 20; i++ {
			_, err := session.SelectAnswer(i, OptionA)
			require.NoError(t, err)
		}

		assert.Equal(t, 20, session.Score())
	})

	t.Run("wrong answers do not count", func(t *testing.T) {
		session, err := NewSession(testQuestions(4), 60, Document{})
		require.NoError(t, err)

		_, err = session.SelectAnswer(0, OptionA)
		require.NoError(t, err)
		_, err = session.SelectAnswer(1, OptionB)
		require.NoError(t, err)
		_, err = session.SelectAnswer(2, OptionD)
		require.NoError(t, err)

		assert.Equal(t, 1, session.Score())
	})

	t.Run("empty answers score zero", func(t *testing.T) {
		session, err := NewSession(testQuestions(5), 60, Document{})
		require.NoError(t, err)
		assert.Equal(t, 0, session.Score())
	})
}

func TestQuestionTexts(t *testing.T) {
	questions := testQuestions(3)
	questions[0].Text = "first"
	questions[1].Text = "second"
	questions[2].Text = "third"

	session, err := NewSession(questions, 60, Document{})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, session.QuestionTexts())
}

func TestQuestionValidate(t *testing.T) {
	valid := testQuestions(1)[0]
	require.NoError(t, valid.Validate())

	t.Run("empty text", func(t *testing.T) {
		q := valid
		q.Text = ""
		assert.ErrorIs(t, q.Validate(), ErrQuestionTextEmpty)
	})

	t.Run("missing option", func(t *testing.T) {
		q := valid
		q.Options = map[OptionKey]string{OptionA: "a", OptionB: "b", OptionC: "c"}
		assert.ErrorIs(t, q.Validate(), ErrQuestionOptionsIncomplete)
	})

	t.Run("invalid correct key", func(t *testing.T) {
		q := valid
		q.CorrectAnswer = OptionKey("X")
		assert.ErrorIs(t, q.Validate(), ErrInvalidOptionKey)
	})
}
