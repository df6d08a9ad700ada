package repository

import (
	"context"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type paymentItem struct {
	UserID       string                 `dynamodbav:"user_id"`
	ID           string                 `dynamodbav:"id"`
	BudgetID     string                 `dynamodbav:"budget_id"`
	Date         string                 `dynamodbav:"date"`
	Status       string                 `dynamodbav:"status"`
	Amount       string                 `dynamodbav:"amount"`
	MPPayload    map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// PaymentDynamoRepository persists budget Payments in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: id (string)
//
// A user has few payments, so listing by budget filters the partition
// instead of maintaining a secondary index.
type PaymentDynamoRepository struct {
	t table
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{t: table{ddb: ddb, name: tableName}}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if err := r.t.create(ctx, toPaymentItem(p)); err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) ListByBudgetID(ctx context.Context, userID, budgetID string) ([]entities.Payment, error) {
	items, err := queryUser[paymentItem](ctx, r.t, userID, aws.String("budget_id = :bid"), map[string]types.AttributeValue{
		":bid": &types.AttributeValueMemberS{Value: budgetID},
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Payment, 0, len(items))
	for _, it := range items {
		out = append(out, fromPaymentItem(it))
	}
	return out, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		UserID:       p.UserID,
		ID:           p.ID,
		BudgetID:     p.BudgetID,
		Date:         formatTime(p.Date),
		Status:       string(p.Status),
		Amount:       formatMoney(p.Amount),
		MPPayload:    p.ProviderPayload,
		MPPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:                 it.ID,
		UserID:             it.UserID,
		BudgetID:           it.BudgetID,
		Date:               parseTime(it.Date),
		Status:             entities.PaymentStatus(it.Status),
		Amount:             parseMoney(it.Amount),
		ProviderPayload:    it.MPPayload,
		ProviderPayloadRaw: []byte(it.MPPayloadRaw),
	}
}
