package models

import "github.com/samber/lo"

type NodeType string

const (
	NodeMaster       NodeType = "master"
	NodeData         NodeType = "data"
	NodeCoordinating NodeType = "coordinating"
	NodeML           NodeType = "ml"
	NodeIngest       NodeType = "ingest"
)

var NodeTypes = []NodeType{NodeMaster, NodeData, NodeCoordinating, NodeML, NodeIngest}

func (t NodeType) Valid() bool {
	return lo.Contains(NodeTypes, t)
}

type ArchitectureNode struct {
	Type  NodeType `json:"type" jsonschema:"required,enum=master,enum=data,enum=coordinating,enum=ml,enum=ingest"`
	Count int      `json:"count" jsonschema:"required"`
	Specs string   `json:"specs" jsonschema:"required,description=e.g. 64GB RAM / 16 vCPU"`
}

type ArchitectureDesign struct {
	Nodes          []ArchitectureNode `json:"nodes" jsonschema:"required"`
	ShardsPerIndex int                `json:"shardsPerIndex" jsonschema:"required"`
	ReplicaCount   int                `json:"replicaCount" jsonschema:"required"`
	ILMPolicy      string             `json:"ilmPolicy" jsonschema:"required"`
	Summary        string             `json:"summary" jsonschema:"required"`
	CostEstimation string             `json:"costEstimation" jsonschema:"required"`
}

func (d *ArchitectureDesign) TotalNodes() int {
	return lo.SumBy(d.Nodes, func(n ArchitectureNode) int { return n.Count })
}
