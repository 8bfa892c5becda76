package learn

// Trajectory records the state-action pairs of one episode together with the
// episode's discounted return, stamped once the episode ends.
type Trajectory struct {
	states  []int
	actions []int
	returns []float64
	closed  int
}

func NewTrajectory() *Trajectory {
	return &Trajectory{
		states:  make([]int, 0),
		actions: make([]int, 0),
		returns: make([]float64, 0),
	}
}

func (t *Trajectory) Append(state, action int) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.returns = append(t.returns, 0)
}

// Close stamps the episode return on every step appended since the last Close.
func (t *Trajectory) Close(ret float64) {
	for i := t.closed; i < len(t.returns); i++ {
		t.returns[i] = ret
	}
	t.closed = len(t.returns)
}

func (t *Trajectory) Len() int {
	return len(t.states)
}

func (t *Trajectory) Get(i int) (int, int, float64, bool) {
	if i < 0 || i >= len(t.states) {
		return 0, 0, 0, false
	}
	return t.states[i], t.actions[i], t.returns[i], true
}

// Reset empties the trajectory, keeping the allocated capacity
func (t *Trajectory) Reset() {
	t.states = t.states[:0]
	t.actions = t.actions[:0]
	t.returns = t.returns[:0]
	t.closed = 0
}
