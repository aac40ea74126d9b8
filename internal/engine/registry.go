package engine

// task — одна отложенная заявка на рефреш слота.
type task struct {
	slot string
	done *Completion
}

// taskBuffer — упорядоченная очередь отложенных задач. nil-элементы —
// заглушки после глобального sweep: содержимое уже отправлено, но длина
// буфера сохранена, чтобы барьерный счётчик не сбрасывался.
// Инварианты: добавление только в хвост; длина уменьшается только
// через drain.
type taskBuffer struct {
	tasks []*task
}

func (b *taskBuffer) append(t *task) {
	b.tasks = append(b.tasks, t)
}

func (b *taskBuffer) len() int { return len(b.tasks) }

// drain возвращает все не-nil задачи в порядке добавления и обнуляет буфер.
func (b *taskBuffer) drain() []*task {
	var out []*task
	for _, t := range b.tasks {
		if t != nil {
			out = append(out, t)
		}
	}
	b.tasks = b.tasks[:0]
	return out
}

// blank затирает все элементы nil-ами, сохраняя длину, и возвращает
// вытесненные задачи (их слоты только что накрыл sweep).
func (b *taskBuffer) blank() []*task {
	var out []*task
	for i, t := range b.tasks {
		if t != nil {
			out = append(out, t)
			b.tasks[i] = nil
		}
	}
	return out
}

// slotIntervals — реестр повторяющихся интервалов: не более одного на слот.
type slotIntervals struct {
	m map[string]*repeater
}

func newSlotIntervals() *slotIntervals {
	return &slotIntervals{m: make(map[string]*repeater)}
}

func (s *slotIntervals) add(slot string, r *repeater) error {
	if _, ok := s.m[slot]; ok {
		return ErrDuplicateInterval
	}
	s.m[slot] = r
	return nil
}

func (s *slotIntervals) remove(slot string) (*repeater, error) {
	r, ok := s.m[slot]
	if !ok {
		return nil, ErrNoInterval
	}
	delete(s.m, slot)
	return r, nil
}

func (s *slotIntervals) has(slot string) bool {
	_, ok := s.m[slot]
	return ok
}

// drainAll снимает все интервалы разом (teardown).
func (s *slotIntervals) drainAll() []*repeater {
	out := make([]*repeater, 0, len(s.m))
	for slot, r := range s.m {
		out = append(out, r)
		delete(s.m, slot)
	}
	return out
}
