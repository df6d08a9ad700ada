package repository

import (
	"context"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type settingsItem struct {
	UserID          string `dynamodbav:"user_id"`
	CompanyName     string `dynamodbav:"company_name"`
	CompanySubtitle string `dynamodbav:"company_subtitle"`
	Phone           string `dynamodbav:"phone"`
	FooterText      string `dynamodbav:"footer_text"`
	UpdatedAt       string `dynamodbav:"updated_at"`
}

// SettingsDynamoRepository keeps one CompanySettings item per user.
//
// Table requirements:
//   - PK: user_id (string)
type SettingsDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ISettingsRepository = (*SettingsDynamoRepository)(nil)

func NewSettingsDynamoRepository(ddb DynamoAPI, tableName string) *SettingsDynamoRepository {
	return &SettingsDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *SettingsDynamoRepository) Get(ctx context.Context, userID string) (entities.CompanySettings, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.CompanySettings{}, err
	}
	if len(out.Item) == 0 {
		return entities.CompanySettings{}, nil
	}
	var it settingsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.CompanySettings{}, err
	}
	return fromSettingsItem(it), nil
}

// Put overwrites the whole item; there is no merge with what was stored.
func (r *SettingsDynamoRepository) Put(ctx context.Context, s entities.CompanySettings) (entities.CompanySettings, error) {
	av, err := attributevalue.MarshalMap(toSettingsItem(s))
	if err != nil {
		return entities.CompanySettings{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.CompanySettings{}, err
	}
	return s, nil
}

// List scans every user's settings. Only the reminder job calls it.
func (r *SettingsDynamoRepository) List(ctx context.Context) ([]entities.CompanySettings, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	var out []entities.CompanySettings
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var batch []settingsItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, err
		}
		for _, it := range batch {
			out = append(out, fromSettingsItem(it))
		}
	}
	return out, nil
}

func toSettingsItem(s entities.CompanySettings) settingsItem {
	return settingsItem{
		UserID:          s.UserID,
		CompanyName:     s.CompanyName,
		CompanySubtitle: s.CompanySubtitle,
		Phone:           s.Phone,
		FooterText:      s.FooterText,
		UpdatedAt:       formatTime(s.UpdatedAt),
	}
}

func fromSettingsItem(it settingsItem) entities.CompanySettings {
	return entities.CompanySettings{
		UserID:          it.UserID,
		CompanyName:     it.CompanyName,
		CompanySubtitle: it.CompanySubtitle,
		Phone:           it.Phone,
		FooterText:      it.FooterText,
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
