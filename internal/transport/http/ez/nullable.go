package ez

import (
	"bytes"
	"encoding/json"
)

// Nullable 区分 PATCH 里的三种状态：字段缺省、显式 null、给了值
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// Null 显式传了 null
func (n Nullable[T]) Null() bool { return n.Set && n.Value == nil }
