package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tabtodo/internal/todo"
)

var motivationalMessages = []string{
	"You're crushing it! 🚀",
	"Level up! ⭐",
	"Amazing progress! 🌟",
	"You're on fire! 🔥",
	"Keep up the great work! 💪",
	"You're unstoppable! 🏃‍♂️",
	"Fantastic job! 🎯",
	"You're a star! ⭐",
	"Incredible work! 🌈",
	"You're making it happen! 🎉",
}

var celebrationEmojis = []string{"🎉", "🎊", "🌟", "⭐", "🎯", "🏆", "💪", "🚀"}

const celebrationCount = 5

// refreshProgress recomputes the visible summary. When the counts moved and
// something is done, it shows a fresh message and arms its dismiss timer.
func (m *Model) refreshProgress() tea.Cmd {
	prev := m.Progress
	m.Progress = todo.Summarize(m.VisibleTasks(), m.cfg.PointsPerTask)
	if m.Progress.CompletedTasks == 0 {
		m.Motivation = Motivation{seq: m.Motivation.seq}
		return nil
	}
	if prev.CompletedTasks == m.Progress.CompletedTasks && prev.TotalTasks == m.Progress.TotalTasks {
		return nil
	}
	return m.showMotivation()
}

func (m *Model) showMotivation() tea.Cmd {
	seq := m.Motivation.seq + 1
	mv := Motivation{
		Text: motivationalMessages[m.pick(len(motivationalMessages))],
		seq:  seq,
	}
	if m.Progress.AllDone() {
		mv.Emojis = make([]string, 0, celebrationCount)
		for i := 0; i < celebrationCount; i++ {
			mv.Emojis = append(mv.Emojis, celebrationEmojis[m.pick(len(celebrationEmojis))])
		}
	}
	m.Motivation = mv
	return dismissMotivationCmd(seq, m.cfg.MessageTimeout())
}

func (m *Model) dismissMotivation(seq int) {
	// A newer message owns its own timer.
	if seq != m.Motivation.seq {
		return
	}
	m.Motivation = Motivation{seq: seq}
}
