package mail

// Batch accumulates messages to be sent in a single request.
// It is not safe for concurrent use.
type Batch struct {
	messages []Message
}

// Add appends a message
func (b *Batch) Add(msg Message) {
	b.messages = append(b.messages, msg)
}

// Len returns the number of pending messages
func (b *Batch) Len() int {
	return len(b.messages)
}

// Messages returns a copy of the pending messages in insertion order
func (b *Batch) Messages() []Message {
	return append([]Message(nil), b.messages...)
}

// Drain returns the pending messages and empties the batch.
// The result is never nil so an empty batch still encodes as [].
func (b *Batch) Drain() []Message {
	drained := b.messages
	if drained == nil {
		drained = []Message{}
	}
	b.messages = nil
	return drained
}
