package repository

import (
	"database/sql"
	"testing"

	"github.com/behrang/sqlbatch"
	"github.com/ethereum/go-ethereum/common"

	"poster/domain"
)

// memoryBatch keeps one journal row per key and runs the commands against it.
type memoryBatch struct {
	rows map[string]string
	opts []*sql.TxOptions
}

func (b *memoryBatch) Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error) {
	b.opts = append(b.opts, opts)
	results := make([]interface{}, len(commands))
	for i, cmd := range commands {
		key := cmd.Args[0].(string)
		switch cmd.Query {
		case sqlDeploymentUpsert:
			b.rows[key] = cmd.Args[1].(string)
		case sqlDeploymentFind:
			jstr, ok := b.rows[key]
			if !ok {
				continue
			}
			res, err := cmd.ReadOne(func(dest ...interface{}) error {
				*dest[0].(*string) = key
				*dest[1].(*[]byte) = []byte(jstr)
				return nil
			})
			if err != nil {
				return results, err
			}
			results[i] = res
		}
	}
	return results, nil
}

func TestDeploymentRepository_FindMissing(t *testing.T) {
	repo := NewDeploymentRepository(&memoryBatch{rows: map[string]string{}})

	d, err := repo.Find("PosterModule#1")
	if err != nil || d != nil {
		t.Errorf("Find = %v, %v; want nil, nil", d, err)
	}
}

func TestDeploymentRepository_UpsertAndFind(t *testing.T) {
	batch := &memoryBatch{rows: map[string]string{}}
	repo := NewDeploymentRepository(batch)

	poster := common.HexToAddress("0x60349E3B0A05dbd8BE334f67B48e2e58012C02bc")
	saved, err := repo.Upsert(&domain.Deployment{Key: "PosterModule#1", PosterAddress: &poster, Threshold: "5"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if saved.Key != "PosterModule#1" || *saved.PosterAddress != poster {
		t.Errorf("Upsert returned %+v", saved)
	}

	found, err := repo.Find("PosterModule#1")
	if err != nil || found == nil || found.Threshold != "5" {
		t.Errorf("Find = %+v, %v", found, err)
	}

	if !batch.opts[1].ReadOnly {
		t.Error("Find must run read-only")
	}
}
