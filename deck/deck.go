// Package deck implements Threes' deck counter: the small bag of 1/2/3
// cards the game draws from, with auto-refill once the bag runs dry.
// Threes never needs to draw a *specific* remaining card, only to track
// how many of each of the three face values are left, so the whole bag
// collapses to a three-field counter.
package deck

// Counter tracks how many 1s, 2s, and 3s remain in the deck. It is a
// small value type: callers pass it by copy, exactly like board.Board.
type Counter struct {
	Ones   int
	Twos   int
	Threes int
}

// Full is a freshly refilled counter: four of each value.
func Full() Counter {
	return Counter{Ones: 4, Twos: 4, Threes: 4}
}

// FromLogical builds a Counter by counting instances of 1/2/3 in a
// logical multiset of face values (e.g. the remaining undrawn cards a
// front-end knows about). Any other value is ignored.
func FromLogical(values []int) Counter {
	var c Counter
	for _, v := range values {
		switch v {
		case 1:
			c.Ones++
		case 2:
			c.Twos++
		case 3:
			c.Threes++
		}
	}
	return c
}

func (c Counter) isEmpty() bool {
	return c.Ones == 0 && c.Twos == 0 && c.Threes == 0
}

func (c Counter) refillIfEmpty() Counter {
	if c.isEmpty() {
		return Full()
	}
	return c
}

// RemoveOne removes a single 1 from the deck, refilling to (4,4,4) if
// that empties it.
func (c Counter) RemoveOne() Counter {
	if c.Ones > 0 {
		c.Ones--
	}
	return c.refillIfEmpty()
}

// RemoveTwo removes a single 2 from the deck, refilling if that empties it.
func (c Counter) RemoveTwo() Counter {
	if c.Twos > 0 {
		c.Twos--
	}
	return c.refillIfEmpty()
}

// RemoveThree removes a single 3 from the deck, refilling if that empties it.
func (c Counter) RemoveThree() Counter {
	if c.Threes > 0 {
		c.Threes--
	}
	return c.refillIfEmpty()
}

// Remove removes one card of the given face value (1, 2, or 3). Any
// other value is a no-op: c is returned unchanged, without a refill
// check.
func (c Counter) Remove(value int) Counter {
	switch value {
	case 1:
		return c.RemoveOne()
	case 2:
		return c.RemoveTwo()
	case 3:
		return c.RemoveThree()
	default:
		return c
	}
}

// Count returns how many cards of the given face value (1, 2, or 3)
// remain. Any other value returns 0.
func (c Counter) Count(value int) int {
	switch value {
	case 1:
		return c.Ones
	case 2:
		return c.Twos
	case 3:
		return c.Threes
	default:
		return 0
	}
}

// Total returns the sum of all three counts.
func (c Counter) Total() int {
	return c.Ones + c.Twos + c.Threes
}
