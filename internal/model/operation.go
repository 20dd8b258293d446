package model

import (
	"encoding/json"
	"fmt"
)

// Reason tags the direction an optimizer step moved the price.
type Reason string

const (
	ReasonBudgetDown Reason = "budget-down"
	ReasonBudgetUp   Reason = "budget-up"
)

// Operation is one recorded optimizer step. The concrete types are
// RemoveOp, AddOp and FinishOp.
type Operation interface {
	OperationType() string
	operation()
}

// RemoveOp records a placement dropped to lower the price.
type RemoveOp struct {
	ModuleID ModuleID
	RoomID   string
	Key      string
	Reason   Reason
}

// AddOp records a placement added to raise the price.
type AddOp struct {
	ModuleID ModuleID
	RoomID   string
	Key      string
	Reason   Reason
}

// FinishOp records a finish substitution.
type FinishOp struct {
	FinishType FinishKind
	From       string
	To         string
	Reason     Reason
}

func (RemoveOp) OperationType() string { return "remove" }
func (AddOp) OperationType() string    { return "add" }
func (FinishOp) OperationType() string { return "finish" }

func (RemoveOp) operation() {}
func (AddOp) operation()    {}
func (FinishOp) operation() {}

// OperationReason returns the reason carried by op.
func OperationReason(op Operation) Reason {
	switch o := op.(type) {
	case RemoveOp:
		return o.Reason
	case AddOp:
		return o.Reason
	case FinishOp:
		return o.Reason
	}
	panic(fmt.Sprintf("unhandled operation %T", op))
}

// DescribeOperation renders op as a one-line human summary.
func DescribeOperation(op Operation) string {
	switch o := op.(type) {
	case RemoveOp:
		return fmt.Sprintf("remove %s from %s (%s)", o.ModuleID, o.RoomID, o.Key)
	case AddOp:
		return fmt.Sprintf("add %s to %s (%s)", o.ModuleID, o.RoomID, o.Key)
	case FinishOp:
		return fmt.Sprintf("%s finish %s -> %s", o.FinishType, o.From, o.To)
	}
	panic(fmt.Sprintf("unhandled operation %T", op))
}

type placementOpJSON struct {
	Type     string   `json:"type"`
	ModuleID ModuleID `json:"moduleId"`
	RoomID   string   `json:"roomId"`
	Key      string   `json:"key"`
	Reason   Reason   `json:"reason"`
}

type finishOpJSON struct {
	Type       string     `json:"type"`
	FinishType FinishKind `json:"finishType"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	Reason     Reason     `json:"reason"`
}

func (o RemoveOp) wire() placementOpJSON {
	return placementOpJSON{Type: o.OperationType(), ModuleID: o.ModuleID, RoomID: o.RoomID, Key: o.Key, Reason: o.Reason}
}

func (o AddOp) wire() placementOpJSON {
	return placementOpJSON{Type: o.OperationType(), ModuleID: o.ModuleID, RoomID: o.RoomID, Key: o.Key, Reason: o.Reason}
}

func (o FinishOp) wire() finishOpJSON {
	return finishOpJSON{Type: o.OperationType(), FinishType: o.FinishType, From: o.From, To: o.To, Reason: o.Reason}
}

func (o RemoveOp) MarshalJSON() ([]byte, error) { return json.Marshal(o.wire()) }
func (o AddOp) MarshalJSON() ([]byte, error)    { return json.Marshal(o.wire()) }
func (o FinishOp) MarshalJSON() ([]byte, error) { return json.Marshal(o.wire()) }

// Operations is an ordered operation log. It decodes the "type" discriminator
// back into concrete operation values.
type Operations []Operation

func (ops *Operations) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Operations, 0, len(raw))
	for i, msg := range raw {
		op, err := decodeOperation(msg)
		if err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
		out = append(out, op)
	}
	*ops = out
	return nil
}

// MarshalJSON keeps an empty log as [] rather than null.
func (ops Operations) MarshalJSON() ([]byte, error) {
	if ops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Operation(ops))
}

func decodeOperation(msg json.RawMessage) (Operation, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "remove", "add":
		var p placementOpJSON
		if err := json.Unmarshal(msg, &p); err != nil {
			return nil, err
		}
		if head.Type == "remove" {
			return RemoveOp{ModuleID: p.ModuleID, RoomID: p.RoomID, Key: p.Key, Reason: p.Reason}, nil
		}
		return AddOp{ModuleID: p.ModuleID, RoomID: p.RoomID, Key: p.Key, Reason: p.Reason}, nil
	case "finish":
		var f finishOpJSON
		if err := json.Unmarshal(msg, &f); err != nil {
			return nil, err
		}
		return FinishOp{FinishType: f.FinishType, From: f.From, To: f.To, Reason: f.Reason}, nil
	}
	return nil, NewError(ErrCodeInvalidInput, "unknown operation type %q", head.Type)
}
