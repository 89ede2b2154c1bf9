package private

// status is the summary a node reports to other nodes.
type status struct {
	LatestBlockHash  string `json:"latest_block_hash"`
	LatestBlockIndex uint64 `json:"latest_block_index"`
	Length           int    `json:"length"`
	Difficulty       uint   `json:"difficulty"`
	Uncommitted      int    `json:"uncommitted"`
}

// resolution is the result of offering a candidate chain to the node.
type resolution struct {
	Outcome         string `json:"outcome"`
	Adopted         bool   `json:"adopted"`
	LocalLength     int    `json:"local_length"`
	CandidateLength int    `json:"candidate_length"`
	Error           string `json:"error,omitempty"`
}
