package planner

// Tracker 记录本回合已经决定过的格子，保证每个格子最多处理一次。
// 每回合开始时必须 Reset。
type Tracker struct {
	marks []bool
	count int
}

func NewTracker(size int) *Tracker {
	return &Tracker{marks: make([]bool, size)}
}

// Reset 清空标记，size 变化时重新分配。
func (t *Tracker) Reset(size int) {
	if len(t.marks) != size {
		t.marks = make([]bool, size)
	} else {
		clear(t.marks)
	}
	t.count = 0
}

// Mark 标记下标 i，已被标记过时返回 false。
func (t *Tracker) Mark(i int) bool {
	if t.marks[i] {
		return false
	}
	t.marks[i] = true
	t.count++
	return true
}

func (t *Tracker) Moved(i int) bool { return t.marks[i] }

func (t *Tracker) Count() int { return t.count }
