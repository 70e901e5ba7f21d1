package io

// Queue is a bounded FIFO of values. As an Input it returns the values
// in order, and as an Output it records every OUT value.
type Queue struct {
	Capacity int // Capacity in values; zero means unbounded.

	ReadIndex int
	Data      []int
}

var _ Input = (*Queue)(nil)
var _ Output = (*Queue)(nil)

// NewQueue creates an unbounded queue holding the values.
func NewQueue(values ...int) *Queue {
	return &Queue{Data: values}
}

// Rewind restarts reading from the first value.
func (q *Queue) Rewind() {
	q.ReadIndex = 0
}

// Reset empties the queue.
func (q *Queue) Reset() {
	q.ReadIndex = 0
	q.Data = nil
}

// Len returns the number of values not yet received.
func (q *Queue) Len() int {
	return len(q.Data) - q.ReadIndex
}

// Receive returns the next value, or ErrChannelEmpty.
func (q *Queue) Receive() (value int, err error) {
	if q.Len() == 0 {
		err = ErrChannelEmpty
		return
	}

	value = q.Data[q.ReadIndex]
	q.ReadIndex++
	return
}

// Send appends a value. Returns ErrChannelFull if the queue has reached
// capacity.
func (q *Queue) Send(value uint8) (err error) {
	if q.Capacity > 0 && len(q.Data) >= q.Capacity {
		err = ErrChannelFull
		return
	}

	q.Data = append(q.Data, int(value))
	return
}
