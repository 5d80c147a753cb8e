// Package ordering maintains a template's question list: single-element
// moves, inserts, and removals, with the 1-based order field kept dense and
// matching the display sequence after every mutation.
package ordering

import "github.com/clearhire/talentview/internal/models"

// List holds an ordered sequence of question ids plus the question data for
// each id. All mutations re-stamp order, so Questions always returns a
// sequence whose order fields are exactly 1..N.
type List struct {
	ids  []string
	byID map[string]models.Question
}

// NewList builds a list from questions, preserving their given sequence.
// Order fields are re-stamped immediately; duplicate ids keep the first
// occurrence.
func NewList(questions []models.Question) *List {
	l := &List{byID: make(map[string]models.Question, len(questions))}
	for _, q := range questions {
		if _, ok := l.byID[q.ID]; ok {
			continue
		}
		l.ids = append(l.ids, q.ID)
		l.byID[q.ID] = q
	}
	l.restamp()
	return l
}

// Len returns the number of questions in the list.
func (l *List) Len() int { return len(l.ids) }

// Reorder moves the question movedID so that it occupies targetID's
// position, shifting the questions in between; a single-element move, not a
// swap. Unknown ids or movedID == targetID are a no-op.
func (l *List) Reorder(movedID, targetID string) {
	if movedID == targetID {
		return
	}
	from := l.indexOf(movedID)
	to := l.indexOf(targetID)
	if from < 0 || to < 0 {
		return
	}

	id := l.ids[from]
	l.ids = append(l.ids[:from], l.ids[from+1:]...)
	l.ids = append(l.ids[:to], append([]string{id}, l.ids[to:]...)...)
	l.restamp()
}

// Insert appends q to the end of the list and re-stamps order. A question
// whose id is already present is replaced in place instead.
func (l *List) Insert(q models.Question) {
	if _, ok := l.byID[q.ID]; ok {
		l.byID[q.ID] = q
		l.restamp()
		return
	}
	l.ids = append(l.ids, q.ID)
	l.byID[q.ID] = q
	l.restamp()
}

// InsertAt inserts q before position index (clamped to the list bounds) and
// re-stamps order for every affected question.
func (l *List) InsertAt(q models.Question, index int) {
	if _, ok := l.byID[q.ID]; ok {
		l.Remove(q.ID)
	}
	if index < 0 {
		index = 0
	}
	if index > len(l.ids) {
		index = len(l.ids)
	}
	l.ids = append(l.ids[:index], append([]string{q.ID}, l.ids[index:]...)...)
	l.byID[q.ID] = q
	l.restamp()
}

// Remove deletes the question with the given id and closes the gap its
// order value left behind. It reports whether anything was removed.
func (l *List) Remove(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.ids = append(l.ids[:i], l.ids[i+1:]...)
	delete(l.byID, id)
	l.restamp()
	return true
}

// Questions returns the questions in display sequence with their stamped
// order fields. The returned slice is a copy.
func (l *List) Questions() []models.Question {
	out := make([]models.Question, 0, len(l.ids))
	for _, id := range l.ids {
		out = append(out, l.byID[id])
	}
	return out
}

func (l *List) indexOf(id string) int {
	for i, candidate := range l.ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

func (l *List) restamp() {
	for i, id := range l.ids {
		q := l.byID[id]
		q.Order = i + 1
		l.byID[id] = q
	}
}

// Restamp returns questions with their order fields rewritten to the dense
// 1..N sequence matching their current positions. Used when a whole list
// arrives from a client and must satisfy the order invariant before storage.
func Restamp(questions []models.Question) []models.Question {
	out := append([]models.Question(nil), questions...)
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}
