package repository

import (
	"database/sql"

	"poster/domain"

	"github.com/behrang/sqlbatch"
)

const (
	sqlDeploymentUpsert = `
	insert into deployments as d (
			key, journal, update_time
		)
		values (
			$1, $2::jsonb, now()
		)
	on conflict (key) do
		update set
			journal = $2::jsonb, update_time = now()
`

	sqlDeploymentFind = `
	select
		key, journal
	from deployments
	where key = $1
`
)

var (
	journalWrite = sql.TxOptions{
		ReadOnly:  false,
		Isolation: sql.LevelReadCommitted,
	}

	journalRead = sql.TxOptions{
		ReadOnly:  true,
		Isolation: sql.LevelReadCommitted,
	}
)

// BatchHandler executes sqlbatch commands inside one transaction.
type BatchHandler interface {
	Batch(opts *sql.TxOptions, commands []sqlbatch.Command) ([]interface{}, error)
}

type DeploymentRepository struct {
	batchHandler BatchHandler
}

func NewDeploymentRepository(db BatchHandler) *DeploymentRepository {
	return &DeploymentRepository{batchHandler: db}
}

func readDeployment(scan func(...interface{}) error) (interface{}, error) {
	var key string
	var jstr []byte
	err := scan(
		&key, &jstr,
	)
	if err != nil {
		return nil, err
	}

	r := &domain.Deployment{}
	if err = r.FromJson(string(jstr)); err != nil {
		return nil, err
	}
	r.Key = key
	return r, nil
}

func (repo *DeploymentRepository) Upsert(deployment *domain.Deployment) (*domain.Deployment, error) {

	results, err := repo.batchHandler.Batch(&journalWrite, []sqlbatch.Command{
		{
			Query: sqlDeploymentUpsert,
			Args: []interface{}{
				deployment.Key, deployment.ToJson(),
			},
			Affect: 1,
		},
		{
			Query:   sqlDeploymentFind,
			Args:    []interface{}{deployment.Key},
			ReadOne: readDeployment,
		},
	})
	if err != nil {
		return nil, err
	}

	result, _ := results[1].(*domain.Deployment)
	return result, nil
}

// Find returns nil without error when the key has no journal yet; sqlbatch leaves
// the ReadOne result nil when no row matches.
func (repo *DeploymentRepository) Find(key string) (*domain.Deployment, error) {
	results, err := repo.batchHandler.Batch(&journalRead, []sqlbatch.Command{
		{
			Query:   sqlDeploymentFind,
			Args:    []interface{}{key},
			ReadOne: readDeployment,
		},
	})
	if err != nil {
		return nil, err
	}

	result, _ := results[0].(*domain.Deployment)
	return result, nil
}
