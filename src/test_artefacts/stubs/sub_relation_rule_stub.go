package stubs

import (
	"time"

	"github.com/cantdoitbye/backend-sub007/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type SubRelationRuleStub struct {
	rule entities.SubRelationRule
}

func NewSubRelationRuleStub() SubRelationRuleStub {
	now := time.Now().UTC()

	rule := entities.SubRelationRule{
		ID:               gofakeit.Int64(),
		CategoryID:       gofakeit.Int64(),
		CategoryName:     "Friend",
		Name:             "friend",
		Directionality:   entities.DirectionalityUnidirectional,
		ApprovalRequired: true,
		ReverseLabel:     "",
		DefaultBucket:    entities.BucketOuter,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return SubRelationRuleStub{rule: rule}
}

func (rs SubRelationRuleStub) WithCategory(categoryName string) SubRelationRuleStub {
	rs.rule.CategoryName = categoryName
	return rs
}

func (rs SubRelationRuleStub) WithName(name string) SubRelationRuleStub {
	rs.rule.Name = name
	return rs
}

func (rs SubRelationRuleStub) WithBidirectional(reverseLabel string) SubRelationRuleStub {
	rs.rule.Directionality = entities.DirectionalityBidirectional
	rs.rule.ReverseLabel = reverseLabel
	return rs
}

func (rs SubRelationRuleStub) WithDefaultBucket(bucket entities.BucketType) SubRelationRuleStub {
	rs.rule.DefaultBucket = bucket
	return rs
}

func (rs SubRelationRuleStub) Get() entities.SubRelationRule {
	return rs.rule
}
