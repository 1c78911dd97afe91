package domain

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Post is one NewPost event. The tag is the keccak256 topic of the indexed string, the
// original text cannot be recovered from chain data.
type Post struct {
	User        common.Address `json:"user"`
	Content     string         `json:"content"`
	Tag         common.Hash    `json:"tag"`
	TxHash      common.Hash    `json:"transaction_hash"`
	BlockNumber uint64         `json:"block_number"`
	LogIndex    uint           `json:"log_index"`
}

func TagHash(tag string) common.Hash {
	return crypto.Keccak256Hash([]byte(tag))
}

// NewestFirst orders posts by reverse emission order (block, then log index).
func NewestFirst(posts []Post) []Post {
	sorted := make([]Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BlockNumber != sorted[j].BlockNumber {
			return sorted[i].BlockNumber > sorted[j].BlockNumber
		}
		return sorted[i].LogIndex > sorted[j].LogIndex
	})
	return sorted
}

// FilterByTag keeps the posts whose stored tag equals the hash of tag. An empty tag keeps
// everything.
func FilterByTag(posts []Post, tag string) []Post {
	if tag == "" {
		return posts
	}

	hash := TagHash(tag).Hex()
	res := make([]Post, 0, len(posts))
	for _, post := range posts {
		if strings.EqualFold(post.Tag.Hex(), hash) {
			res = append(res, post)
		}
	}
	return res
}
