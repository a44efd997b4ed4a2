package console

// Queue is an Input fed by pushing events, used by front ends that receive
// input as messages rather than by polling hardware.
type Queue struct {
	actions    []Action
	directions []Direction
}

func (q *Queue) PushAction(a Action)       { q.actions = append(q.actions, a) }
func (q *Queue) PushDirection(d Direction) { q.directions = append(q.directions, d) }

// Pending reports whether any event is waiting.
func (q *Queue) Pending() bool { return len(q.actions) > 0 || len(q.directions) > 0 }

func (q *Queue) PollAction() (Action, bool) {
	if len(q.actions) == 0 {
		return 0, false
	}
	a := q.actions[0]
	q.actions = q.actions[1:]
	return a, true
}

func (q *Queue) PollDirectional() (Direction, bool) {
	if len(q.directions) == 0 {
		return 0, false
	}
	d := q.directions[0]
	q.directions = q.directions[1:]
	return d, true
}
