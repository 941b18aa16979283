package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/energypulse/internal/apiclient"
	"github.com/goodnatureofminers/energypulse/internal/model"
)

// Blockchain reads the prediction ledger.
type Blockchain struct {
	api Requester
}

// NewBlockchain constructs a Blockchain service.
func NewBlockchain(api Requester) *Blockchain {
	return &Blockchain{api: api}
}

// Logs returns the caller's ledger entries, newest first.
func (s *Blockchain) Logs(ctx context.Context) (model.BlockchainLogs, error) {
	const operation = "blockchain.logs"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{Operation: operation, Method: http.MethodGet, Path: "/api/blockchain/logs"}, &raw); err != nil {
		return model.BlockchainLogs{}, err
	}
	var logs model.BlockchainLogs
	if err := decodeStrict(operation, raw, &logs, "logs"); err != nil {
		return model.BlockchainLogs{}, err
	}
	return logs, nil
}

// Stats returns network and contract statistics.
func (s *Blockchain) Stats(ctx context.Context) (model.BlockchainStats, error) {
	const operation = "blockchain.stats"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{Operation: operation, Method: http.MethodGet, Path: "/api/blockchain/stats"}, &raw); err != nil {
		return model.BlockchainStats{}, err
	}
	var stats model.BlockchainStats
	if err := decodeStrict(operation, raw, &stats, "currentBlock", "totalTransactions"); err != nil {
		return model.BlockchainStats{}, err
	}
	return stats, nil
}

// Verify checks a transaction hash against the ledger. An unknown or syntactically
// invalid hash yields an unverified result carrying the reason, not an error.
func (s *Blockchain) Verify(ctx context.Context, hash string) (model.VerificationResult, error) {
	const operation = "blockchain.verify"
	normalized, err := model.ParseTxHash(hash)
	if err != nil {
		return model.VerificationResult{Verified: false, Error: err.Error()}, nil
	}

	var raw json.RawMessage
	err = s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodGet,
		Path:      "/api/blockchain/verify/" + segment(normalized),
	}, &raw)
	if apiclient.IsKind(err, apiclient.KindNotFound) {
		return model.VerificationResult{
			Verified: false,
			Error:    apiclient.Message(err, "Transaction not found"),
		}, nil
	}
	if err != nil {
		return model.VerificationResult{}, err
	}

	var result model.VerificationResult
	if err := decodeStrict(operation, raw, &result, "verified"); err != nil {
		return model.VerificationResult{}, err
	}
	if result.Verified && result.Prediction == nil {
		return model.VerificationResult{}, apiclient.Malformed(operation, errMissingPrediction)
	}
	return result, nil
}

// Block returns the ledger entries committed at number.
func (s *Blockchain) Block(ctx context.Context, number uint64) (model.Block, error) {
	const operation = "blockchain.block"
	var raw json.RawMessage
	if err := s.api.Do(ctx, apiclient.Request{
		Operation: operation,
		Method:    http.MethodGet,
		Path:      "/api/blockchain/block/" + strconv.FormatUint(number, 10),
	}, &raw); err != nil {
		return model.Block{}, err
	}
	var block model.Block
	if err := decodeStrict(operation, raw, &block, "blockNumber", "transactions"); err != nil {
		return model.Block{}, err
	}
	return block, nil
}
