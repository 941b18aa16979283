package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// TxStatus is the ledger state of a logged prediction.
type TxStatus string

var (
	TxPending   TxStatus = "pending"
	TxConfirmed TxStatus = "confirmed"
)

// BlockchainLog records that a prediction was committed at a block/transaction.
type BlockchainLog struct {
	ID              uint       `json:"id"`
	PredictionID    uint       `json:"predictionId"`
	TransactionHash string     `json:"transactionHash"`
	BlockNumber     uint64     `json:"blockNumber"`
	GasUsed         uint64     `json:"gasUsed"`
	Status          TxStatus   `json:"status"`
	ContractAddress string     `json:"contractAddress"`
	LoggedAt        time.Time  `json:"loggedAt"`
	ConfirmedAt     *time.Time `json:"confirmedAt"`

	MeterID        string  `json:"meterId"`
	PredictedPrice float64 `json:"predictedPrice"`
	ActualPrice    float64 `json:"actualPrice"`
	Confidence     float64 `json:"confidence"`
	HouseID        string  `json:"houseId"`
}

// BlockchainLogs is the logs envelope.
type BlockchainLogs struct {
	Logs  []BlockchainLog `json:"logs"`
	Total int             `json:"total"`
}

// BlockchainStats describes the ledger network and the caller's share of it.
type BlockchainStats struct {
	CurrentBlock      uint64 `json:"currentBlock"`
	TotalBlocks       uint64 `json:"totalBlocks"`
	TotalTransactions uint64 `json:"totalTransactions"`
	ContractAddress   string `json:"contractAddress"`
	Network           string `json:"network"`
	UserTransactions  int64  `json:"userTransactions"`
	UserConfirmed     int64  `json:"userConfirmed"`
	UserPending       int64  `json:"userPending"`
	UserTotalGas      uint64 `json:"userTotalGas"`
}

// VerifiedPrediction is the prediction matched by a verified transaction.
type VerifiedPrediction struct {
	ID             uint      `json:"id"`
	MeterID        string    `json:"meterId"`
	PredictedPrice float64   `json:"predictedPrice"`
	ActualPrice    *float64  `json:"actualPrice"`
	Confidence     float64   `json:"confidence"`
	Timestamp      time.Time `json:"timestamp"`
}

// VerificationResult is either a verified transaction with its prediction or an error reason.
type VerificationResult struct {
	Verified        bool                `json:"verified"`
	TransactionHash string              `json:"transactionHash,omitempty"`
	BlockNumber     uint64              `json:"blockNumber,omitempty"`
	Status          TxStatus            `json:"status,omitempty"`
	GasUsed         uint64              `json:"gasUsed,omitempty"`
	ContractAddress string              `json:"contractAddress,omitempty"`
	LoggedAt        *time.Time          `json:"loggedAt,omitempty"`
	ConfirmedAt     *time.Time          `json:"confirmedAt,omitempty"`
	Prediction      *VerifiedPrediction `json:"prediction,omitempty"`
	Error           string              `json:"error,omitempty"`
}

// BlockTransaction is one ledger entry inside a block.
type BlockTransaction struct {
	Hash           string   `json:"hash"`
	PredictionID   uint     `json:"predictionId"`
	GasUsed        uint64   `json:"gasUsed"`
	Status         TxStatus `json:"status"`
	MeterID        string   `json:"meterId"`
	PredictedPrice float64  `json:"predictedPrice"`
}

// Block groups the ledger entries committed at one block number.
type Block struct {
	BlockNumber  BlockNumber        `json:"blockNumber"`
	Timestamp    time.Time          `json:"timestamp"`
	Transactions []BlockTransaction `json:"transactions"`
	TxCount      int                `json:"txCount"`
}

// BlockNumber accepts both JSON numbers and numeric strings.
type BlockNumber uint64

// UnmarshalJSON implements json.Unmarshaler.
func (n *BlockNumber) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(data, `"`)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fmt.Errorf("empty block number")
	}
	v, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("parse block number %s: %w", data, err)
	}
	*n = BlockNumber(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n BlockNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(n))
}

// ParseTxHash normalizes a transaction hash to lowercase 0x-prefixed form and
// rejects anything that is not 32 bytes of hex.
func ParseTxHash(s string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	trimmed = strings.TrimPrefix(trimmed, "0x")
	if len(trimmed) != chainhash.MaxHashStringSize {
		return "", fmt.Errorf("transaction hash must be %d hex characters, got %d", chainhash.MaxHashStringSize, len(trimmed))
	}
	if _, err := chainhash.NewHashFromStr(trimmed); err != nil {
		return "", fmt.Errorf("invalid transaction hash: %w", err)
	}
	return "0x" + trimmed, nil
}
