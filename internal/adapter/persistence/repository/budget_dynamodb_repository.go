package repository

import (
	"context"
	"errors"
	"time"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type budgetLineItem struct {
	ID          string `dynamodbav:"id"`
	Description string `dynamodbav:"description"`
	Qty         int    `dynamodbav:"qty"`
	Price       string `dynamodbav:"price"`
}

type clientDataItem struct {
	Name    string `dynamodbav:"name"`
	Address string `dynamodbav:"address,omitempty"`
	Phone   string `dynamodbav:"phone,omitempty"`
}

type budgetItem struct {
	UserID        string           `dynamodbav:"user_id"`
	ID            string           `dynamodbav:"id"`
	BudgetNumber  string           `dynamodbav:"budget_number"`
	ClientData    clientDataItem   `dynamodbav:"client_data"`
	ServiceType   string           `dynamodbav:"service_type"`
	PaymentMethod string           `dynamodbav:"payment_method,omitempty"`
	Items         []budgetLineItem `dynamodbav:"items"`
	PaymentTerms  string           `dynamodbav:"payment_terms,omitempty"`
	Validity      string           `dynamodbav:"validity,omitempty"`
	Total         string           `dynamodbav:"total"`
	Status        string           `dynamodbav:"status"`
	CreatedAt     string           `dynamodbav:"created_at"`
	UpdatedAt     string           `dynamodbav:"updated_at"`
}

// BudgetDynamoRepository persists Budget entities in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: id (string)
//
// Total is stored next to the items so lists can render without summing.
type BudgetDynamoRepository struct {
	t   table
	now func() time.Time
}

var _ interfaces.IBudgetRepository = (*BudgetDynamoRepository)(nil)

func NewBudgetDynamoRepository(ddb DynamoAPI, tableName string) *BudgetDynamoRepository {
	return &BudgetDynamoRepository{t: table{ddb: ddb, name: tableName}, now: time.Now}
}

func (r *BudgetDynamoRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	if err := r.t.create(ctx, toBudgetItem(b)); err != nil {
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetDynamoRepository) Update(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	found, err := r.t.replace(ctx, toBudgetItem(b))
	if err != nil || !found {
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetDynamoRepository) UpdateStatus(ctx context.Context, userID, id string, status entities.BudgetStatus) (entities.Budget, error) {
	out, err := r.t.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.t.name),
		Key:                 r.t.key(userID, id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Budget{}, nil
		}
		return entities.Budget{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Budget{}, nil
	}
	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func (r *BudgetDynamoRepository) Delete(ctx context.Context, userID, id string) error {
	return r.t.delete(ctx, userID, id)
}

func (r *BudgetDynamoRepository) GetByID(ctx context.Context, userID, id string) (entities.Budget, error) {
	var it budgetItem
	found, err := r.t.get(ctx, userID, id, &it)
	if err != nil || !found {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func (r *BudgetDynamoRepository) ListByUser(ctx context.Context, userID string) ([]entities.Budget, error) {
	items, err := queryUser[budgetItem](ctx, r.t, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Budget, 0, len(items))
	for _, it := range items {
		out = append(out, fromBudgetItem(it))
	}
	return out, nil
}

func toBudgetItem(b entities.Budget) budgetItem {
	lines := make([]budgetLineItem, 0, len(b.Items))
	for _, i := range b.Items {
		lines = append(lines, budgetLineItem{ID: i.ID, Description: i.Description, Qty: i.Qty, Price: formatMoney(i.Price)})
	}
	return budgetItem{
		UserID:        b.UserID,
		ID:            b.ID,
		BudgetNumber:  b.BudgetNumber,
		ClientData:    clientDataItem(b.ClientData),
		ServiceType:   b.ServiceType,
		PaymentMethod: b.PaymentMethod,
		Items:         lines,
		PaymentTerms:  b.PaymentTerms,
		Validity:      b.Validity,
		Total:         formatMoney(b.Total),
		Status:        string(b.Status),
		CreatedAt:     formatTime(b.CreatedAt),
		UpdatedAt:     formatTime(b.UpdatedAt),
	}
}

func fromBudgetItem(it budgetItem) entities.Budget {
	lines := make([]entities.BudgetItem, 0, len(it.Items))
	for _, i := range it.Items {
		lines = append(lines, entities.BudgetItem{ID: i.ID, Description: i.Description, Qty: i.Qty, Price: parseMoney(i.Price)})
	}
	return entities.Budget{
		ID:            it.ID,
		UserID:        it.UserID,
		BudgetNumber:  it.BudgetNumber,
		ClientData:    entities.ClientData(it.ClientData),
		ServiceType:   it.ServiceType,
		PaymentMethod: it.PaymentMethod,
		Items:         lines,
		PaymentTerms:  it.PaymentTerms,
		Validity:      it.Validity,
		Total:         parseMoney(it.Total),
		Status:        entities.BudgetStatus(it.Status),
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}
