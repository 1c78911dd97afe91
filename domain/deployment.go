package domain

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	PosterModuleId = "PosterModule"
)

type Memorable interface {
	ToJson() string
	FromJson(jstr string) error
}

// Deployment is the journal of one module deployment on one chain. Each completed step is
// recorded so a repeated run resumes instead of deploying twice.
type Deployment struct {
	Key string `json:"key"`

	PosterAddress    *common.Address `json:"poster_address,omitempty"`
	DeployTxHash     *common.Hash    `json:"deploy_tx_hash,omitempty"`
	OwnershipTxHash  *common.Hash    `json:"ownership_tx_hash,omitempty"`
	TokenAddress     common.Address  `json:"token_address"`
	Threshold        string          `json:"threshold"`
	NewOwner         common.Address  `json:"new_owner"`
	OwnershipMovedTo *common.Address `json:"ownership_moved_to,omitempty"`
}

func DeploymentKey(moduleId string, chainId *big.Int) string {
	return fmt.Sprintf("%v#%v", moduleId, chainId)
}

func (obj *Deployment) IsDeployed() bool {
	return obj.PosterAddress != nil
}

// IsPending reports a deployment transaction that was sent but not yet seen mined.
func (obj *Deployment) IsPending() bool {
	return obj.PosterAddress == nil && obj.DeployTxHash != nil
}

func (obj *Deployment) IsOwnershipTransferred() bool {
	return obj.OwnershipMovedTo != nil && *obj.OwnershipMovedTo == obj.NewOwner
}

func (obj *Deployment) ToJson() string {
	jstr, err := json.Marshal(obj)
	if err != nil {
		return err.Error()
	}
	return string(jstr)
}

func (obj *Deployment) FromJson(jstr string) error {
	err := json.Unmarshal([]byte(jstr), obj)
	return err
}
