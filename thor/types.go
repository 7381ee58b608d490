package thor

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// Account is the state of an address: VET balance, energy (VTHO) balance and
// whether code is deployed at the address.
type Account struct {
	Balance *math.HexOrDecimal256 `json:"balance"`
	Energy  *math.HexOrDecimal256 `json:"energy"`
	HasCode bool                  `json:"hasCode"`
}

// Clause is a single unit of on-chain instruction bundled into a transaction:
// call target (nil for contract creation), transferred value and payload.
type Clause struct {
	To    *common.Address       `json:"to"`
	Value *math.HexOrDecimal256 `json:"value"`
	Data  hexutil.Bytes         `json:"data"`
}

// NewClause builds a wire clause from its parts. A nil value is sent as zero.
func NewClause(to *common.Address, value *big.Int, data []byte) Clause {
	if value == nil {
		value = new(big.Int)
	}
	return Clause{
		To:    to,
		Value: (*math.HexOrDecimal256)(value),
		Data:  data,
	}
}

// Block is a summarized chain block.
type Block struct {
	ID           common.Hash    `json:"id"`
	Number       uint32         `json:"number"`
	Size         uint32         `json:"size"`
	ParentID     common.Hash    `json:"parentID"`
	Timestamp    uint64         `json:"timestamp"`
	GasLimit     uint64         `json:"gasLimit"`
	Beneficiary  common.Address `json:"beneficiary"`
	GasUsed      uint64         `json:"gasUsed"`
	TotalScore   uint64         `json:"totalScore"`
	TxsRoot      common.Hash    `json:"txsRoot"`
	StateRoot    common.Hash    `json:"stateRoot"`
	ReceiptsRoot common.Hash    `json:"receiptsRoot"`
	Signer       common.Address `json:"signer"`
	Transactions []common.Hash  `json:"transactions"`
}

// Transaction is a chain transaction as reported by the node.
type Transaction struct {
	ID           common.Hash   `json:"id"`
	ChainTag     uint8         `json:"chainTag"`
	BlockRef     hexutil.Bytes `json:"blockRef"`
	Expiration   uint32        `json:"expiration"`
	Clauses      []Clause      `json:"clauses"`
	GasPriceCoef uint8         `json:"gasPriceCoef"`
	Gas          uint64        `json:"gas"`
	Origin       common.Address `json:"origin"`
	Nonce        math.HexOrDecimal64 `json:"nonce"`
	DependsOn    *common.Hash  `json:"dependsOn"`
	Size         uint32        `json:"size"`
	Meta         *LogMeta      `json:"meta"`
}

// Receipt is the outcome of a mined transaction. It does not exist until the
// transaction is mined; once observed it is immutable and final.
type Receipt struct {
	GasUsed  uint64                `json:"gasUsed"`
	GasPayer common.Address        `json:"gasPayer"`
	Paid     *math.HexOrDecimal256 `json:"paid"`
	Reward   *math.HexOrDecimal256 `json:"reward"`
	Reverted bool                  `json:"reverted"`
	Outputs  []Output              `json:"outputs"`
	Meta     LogMeta               `json:"meta"`
}

// Output collects the effects of executing one clause.
type Output struct {
	ContractAddress *common.Address `json:"contractAddress"`
	Events          []Event         `json:"events"`
	Transfers       []Transfer      `json:"transfers"`
}

// Event is a raw contract event.
type Event struct {
	Address common.Address `json:"address"`
	Topics  []common.Hash  `json:"topics"`
	Data    hexutil.Bytes  `json:"data"`
}

// Transfer is a VET transfer recorded during clause execution.
type Transfer struct {
	Sender    common.Address        `json:"sender"`
	Recipient common.Address        `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
}

// LogMeta locates an event, transfer or transaction on the chain.
type LogMeta struct {
	BlockID        common.Hash    `json:"blockID"`
	BlockNumber    uint32         `json:"blockNumber"`
	BlockTimestamp uint64         `json:"blockTimestamp"`
	TxID           common.Hash    `json:"txID"`
	TxOrigin       common.Address `json:"txOrigin"`
	ClauseIndex    uint32         `json:"clauseIndex"`
}

// EventLog is one row returned by the event-log filter.
type EventLog struct {
	Event
	Meta LogMeta `json:"meta"`
}

// TransferLog is one row returned by the transfer-log filter.
type TransferLog struct {
	Transfer
	Meta LogMeta `json:"meta"`
}

// LogRange narrows a filter to a span of blocks or timestamps.
type LogRange struct {
	Unit string `json:"unit"` // "block" or "time"
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// FilterOptions is the offset/limit window applied to one pagination step.
type FilterOptions struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// EventCriteria narrows an event filter to an address/topic combination.
type EventCriteria struct {
	Address *common.Address `json:"address,omitempty"`
	Topic0  *common.Hash    `json:"topic0,omitempty"`
	Topic1  *common.Hash    `json:"topic1,omitempty"`
	Topic2  *common.Hash    `json:"topic2,omitempty"`
	Topic3  *common.Hash    `json:"topic3,omitempty"`
	Topic4  *common.Hash    `json:"topic4,omitempty"`
}

// EventFilter selects event logs. Offset/limit options are supplied per
// pagination step, not on the filter itself.
type EventFilter struct {
	Range       *LogRange       `json:"range,omitempty"`
	Options     *FilterOptions  `json:"options,omitempty"`
	CriteriaSet []EventCriteria `json:"criteriaSet,omitempty"`
	Order       string          `json:"order,omitempty"` // "asc" or "desc"
}

// TransferCriteria narrows a transfer filter.
type TransferCriteria struct {
	TxOrigin  *common.Address `json:"txOrigin,omitempty"`
	Sender    *common.Address `json:"sender,omitempty"`
	Recipient *common.Address `json:"recipient,omitempty"`
}

// TransferFilter selects VET transfer logs.
type TransferFilter struct {
	Range       *LogRange          `json:"range,omitempty"`
	Options     *FilterOptions     `json:"options,omitempty"`
	CriteriaSet []TransferCriteria `json:"criteriaSet,omitempty"`
	Order       string             `json:"order,omitempty"`
}

// CallResult is the outcome of executing a clause against chain state
// without a transaction.
type CallResult struct {
	Data      hexutil.Bytes `json:"data"`
	Events    []Event       `json:"events"`
	Transfers []Transfer    `json:"transfers"`
	GasUsed   uint64        `json:"gasUsed"`
	Reverted  bool          `json:"reverted"`
	VMError   string        `json:"vmError"`
}
