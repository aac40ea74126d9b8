package engine

import "fmt"

// Mechanism — закрытое перечисление механизмов буферизации.
// Строковые имена живут только на границе (HTTP/конфиг), внутри — теги.
type Mechanism uint8

const (
	// MechanismInterval — таймер отложенного сброса буфера.
	MechanismInterval Mechanism = iota
	// MechanismBarrier — барьер по количеству накопленных задач.
	MechanismBarrier
	// MechanismRefresh — глобальный периодический sweep по всем слотам.
	MechanismRefresh

	mechanismCount
)

func (m Mechanism) valid() bool { return m < mechanismCount }

func (m Mechanism) String() string {
	switch m {
	case MechanismInterval:
		return "interval"
	case MechanismBarrier:
		return "barrier"
	case MechanismRefresh:
		return "refresh"
	default:
		return fmt.Sprintf("mechanism(%d)", uint8(m))
	}
}

// ParseMechanism разбирает имя механизма с границы API.
func ParseMechanism(s string) (Mechanism, error) {
	switch s {
	case "interval":
		return MechanismInterval, nil
	case "barrier":
		return MechanismBarrier, nil
	case "refresh":
		return MechanismRefresh, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOption, s)
	}
}

// mechTable — явная таблица вариант -> {enable, disable}. У барьера нет
// собственного таймера: он реагирует синхронно на рост буфера.
var mechTable = [mechanismCount]struct {
	enable  func(*Engine)
	disable func(*Engine)
}{
	MechanismInterval: {(*Engine).startFlushTimerLocked, (*Engine).stopFlushTimerLocked},
	MechanismBarrier:  {func(*Engine) {}, func(*Engine) {}},
	MechanismRefresh:  {(*Engine).startRefreshTimerLocked, (*Engine).stopRefreshTimerLocked},
}
