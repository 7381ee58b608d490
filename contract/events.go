package contract

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/vearnfi/wrapped-connex/thor"
	"github.com/vearnfi/wrapped-connex/types"
)

// EventFilter builds a log filter for the named event, constrained to this
// contract's address and, optionally, to values of the event's indexed
// arguments (in declaration order; trailing arguments may be omitted).
func (c *Contract) EventFilter(event string, indexed ...interface{}) (*thor.EventFilter, error) {
	ev, ok := c.abi.Events[event]
	if !ok {
		return nil, fmt.Errorf("event %q: %w", event, types.ErrNotFound)
	}

	addr := c.address
	id := ev.ID
	criteria := thor.EventCriteria{
		Address: &addr,
		Topic0:  &id,
	}

	if len(indexed) > 0 {
		query := make([][]interface{}, len(indexed))
		for i, arg := range indexed {
			query[i] = []interface{}{arg}
		}
		topics, err := abi.MakeTopics(query...)
		if err != nil {
			return nil, fmt.Errorf("pack indexed args for %q: %w", event, err)
		}

		slots := []**common.Hash{&criteria.Topic1, &criteria.Topic2, &criteria.Topic3, &criteria.Topic4}
		if len(topics) > len(slots) {
			return nil, fmt.Errorf("event %q: too many indexed args", event)
		}
		for i, position := range topics {
			if len(position) == 0 {
				continue
			}
			topic := position[0]
			*slots[i] = &topic
		}
	}

	return &thor.EventFilter{
		CriteriaSet: []thor.EventCriteria{criteria},
	}, nil
}

// DecodeEvent unpacks one raw log row emitted by this contract into a map of
// argument name to value, covering both indexed and non-indexed arguments.
func (c *Contract) DecodeEvent(event string, row thor.EventLog) (map[string]interface{}, error) {
	ev, ok := c.abi.Events[event]
	if !ok {
		return nil, fmt.Errorf("event %q: %w", event, types.ErrNotFound)
	}
	if len(row.Topics) == 0 || row.Topics[0] != ev.ID {
		return nil, fmt.Errorf("log is not a %q event", event)
	}

	out := make(map[string]interface{})
	if err := c.abi.UnpackIntoMap(out, event, row.Data); err != nil {
		return nil, fmt.Errorf("unpack %q data: %w", event, err)
	}

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(indexed) > 0 {
		if len(row.Topics)-1 != len(indexed) {
			return nil, fmt.Errorf("event %q: want %d indexed topics, have %d", event, len(indexed), len(row.Topics)-1)
		}
		if err := abi.ParseTopicsIntoMap(out, indexed, row.Topics[1:]); err != nil {
			return nil, fmt.Errorf("parse %q topics: %w", event, err)
		}
	}
	return out, nil
}
