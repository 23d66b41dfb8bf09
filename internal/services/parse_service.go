package services

import (
	"encoding/json"
	"fmt"

	"github.com/classimark/catalog-sync/internal/models"
	"github.com/classimark/catalog-sync/internal/types"
)

// Document stream names, used in parse errors and sync reports.
const (
	DocCategories = "categories"
	DocAssign     = "assign"
	DocAttributes = "attributes"
)

type categoryPayload struct {
	ID            *int                            `json:"id"`
	Name          *string                         `json:"name"`
	Order         int                             `json:"order"`
	ParentID      int                             `json:"parent_id"`
	Label         string                          `json:"label"`
	LabelEn       string                          `json:"label_en"`
	LabelAr       string                          `json:"label_ar"`
	HasChild      types.FlexInt                   `json:"has_child"`
	ReportingName string                          `json:"reporting_name"`
	Icon          string                          `json:"icon"`
	SubCategories types.FlexList[categoryPayload] `json:"subCategories"`
}

type searchFlowPayload struct {
	CategoryID *int     `json:"category_id"`
	Order      []string `json:"order"`
}

type fieldLabelPayload struct {
	FieldName *string `json:"field_name"`
	LabelAr   string  `json:"label_ar"`
	LabelEn   string  `json:"label_en"`
}

type fieldPayload struct {
	ID         *int    `json:"id"`
	Name       *string `json:"name"`
	DataType   string  `json:"data_type"`
	ParentID   int     `json:"parent_id"`
	ParentName *string `json:"parent_name"`
}

type optionPayload struct {
	ID        *string        `json:"id"`
	FieldID   *string        `json:"field_id"`
	Label     string         `json:"label"`
	LabelEn   string         `json:"label_en"`
	Value     string         `json:"value"`
	OptionImg *string        `json:"option_img"`
	HasChild  types.FlexBool `json:"has_child"`
	ParentID  *string        `json:"parent_id"`
	Order     types.FlexInt  `json:"order"`
}

// ParseCategories converts the categories document into MainCategory
// records with their embedded subcategory lists, in document order.
func ParseCategories(doc string) ([]models.MainCategory, error) {
	var envelope struct {
		Result *struct {
			Data *struct {
				Items *[]categoryPayload `json:"items"`
			} `json:"data"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(doc), &envelope); err != nil {
		return nil, types.NewParseError(DocCategories, "result.data.items", "malformed JSON", err)
	}
	if envelope.Result == nil || envelope.Result.Data == nil || envelope.Result.Data.Items == nil {
		return nil, types.NewParseError(DocCategories, "result.data.items", "missing required object", nil)
	}

	items := *envelope.Result.Data.Items
	categories := make([]models.MainCategory, 0, len(items))
	for i, item := range items {
		if item.ID == nil || item.Name == nil {
			path := fmt.Sprintf("result.data.items[%d]", i)
			return nil, types.NewParseError(DocCategories, path, "missing id or name", nil)
		}
		category := models.MainCategory{
			ID:            *item.ID,
			Name:          *item.Name,
			Order:         item.Order,
			ParentID:      item.ParentID,
			Label:         item.Label,
			LabelEn:       item.LabelEn,
			LabelAr:       item.LabelAr,
			HasChild:      item.HasChild.Int() == 1,
			ReportingName: item.ReportingName,
			Icon:          item.Icon,
		}
		for j, sub := range item.SubCategories {
			if sub.ID == nil || sub.Name == nil {
				path := fmt.Sprintf("result.data.items[%d].subCategories[%d]", i, j)
				return nil, types.NewParseError(DocCategories, path, "missing id or name", nil)
			}
			category.SubCategories = append(category.SubCategories, models.SubCategory{
				ID:       *sub.ID,
				Name:     *sub.Name,
				Order:    sub.Order,
				ParentID: sub.ParentID,
				Label:    sub.Label,
				LabelEn:  sub.LabelEn,
				LabelAr:  sub.LabelAr,
				// The feed inverts the flag for subcategories: 0 means it has children.
				HasChild:      sub.HasChild.Int() == 0,
				ReportingName: sub.ReportingName,
				Icon:          sub.Icon,
			})
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// ParseSearchFlow converts the assign document's search_flow entries,
// preserving the field-name order exactly as delivered.
func ParseSearchFlow(doc string) ([]models.SearchFlow, error) {
	var envelope struct {
		Result *struct {
			Data *struct {
				SearchFlow *[]searchFlowPayload `json:"search_flow"`
			} `json:"data"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(doc), &envelope); err != nil {
		return nil, types.NewParseError(DocAssign, "result.data.search_flow", "malformed JSON", err)
	}
	if envelope.Result == nil || envelope.Result.Data == nil || envelope.Result.Data.SearchFlow == nil {
		return nil, types.NewParseError(DocAssign, "result.data.search_flow", "missing required object", nil)
	}

	entries := *envelope.Result.Data.SearchFlow
	flows := make([]models.SearchFlow, 0, len(entries))
	for i, entry := range entries {
		if entry.CategoryID == nil {
			path := fmt.Sprintf("result.data.search_flow[%d]", i)
			return nil, types.NewParseError(DocAssign, path, "missing category_id", nil)
		}
		flows = append(flows, models.SearchFlow{
			CategoryID: *entry.CategoryID,
			Order:      models.StringList(entry.Order),
		})
	}
	return flows, nil
}

// ParseFieldLabels converts the assign document's fields_labels entries.
func ParseFieldLabels(doc string) ([]models.FieldLabel, error) {
	var envelope struct {
		Result *struct {
			Data *struct {
				FieldsLabels *[]fieldLabelPayload `json:"fields_labels"`
			} `json:"data"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(doc), &envelope); err != nil {
		return nil, types.NewParseError(DocAssign, "result.data.fields_labels", "malformed JSON", err)
	}
	if envelope.Result == nil || envelope.Result.Data == nil || envelope.Result.Data.FieldsLabels == nil {
		return nil, types.NewParseError(DocAssign, "result.data.fields_labels", "missing required object", nil)
	}

	entries := *envelope.Result.Data.FieldsLabels
	labels := make([]models.FieldLabel, 0, len(entries))
	for i, entry := range entries {
		if entry.FieldName == nil {
			path := fmt.Sprintf("result.data.fields_labels[%d]", i)
			return nil, types.NewParseError(DocAssign, path, "missing field_name", nil)
		}
		labels = append(labels, models.FieldLabel{
			FieldName: *entry.FieldName,
			LabelAr:   entry.LabelAr,
			LabelEn:   entry.LabelEn,
		})
	}
	return labels, nil
}

// ParseFields converts the attributes document's field definitions.
// parent_name stays nil when absent or JSON-null, never "".
func ParseFields(doc string) ([]models.Field, error) {
	var envelope struct {
		Result *struct {
			Data *struct {
				Fields *[]fieldPayload `json:"fields"`
			} `json:"data"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(doc), &envelope); err != nil {
		return nil, types.NewParseError(DocAttributes, "result.data.fields", "malformed JSON", err)
	}
	if envelope.Result == nil || envelope.Result.Data == nil || envelope.Result.Data.Fields == nil {
		return nil, types.NewParseError(DocAttributes, "result.data.fields", "missing required object", nil)
	}

	entries := *envelope.Result.Data.Fields
	fields := make([]models.Field, 0, len(entries))
	for i, entry := range entries {
		if entry.ID == nil || entry.Name == nil {
			path := fmt.Sprintf("result.data.fields[%d]", i)
			return nil, types.NewParseError(DocAttributes, path, "missing id or name", nil)
		}
		fields = append(fields, models.Field{
			ID:         *entry.ID,
			Name:       *entry.Name,
			DataType:   entry.DataType,
			ParentID:   entry.ParentID,
			ParentName: entry.ParentName,
		})
	}
	return fields, nil
}

// ParseOptions converts the attributes document's option entries.
// option_img and parent_id stay nil when absent or JSON-null.
func ParseOptions(doc string) ([]models.Option, error) {
	var envelope struct {
		Result *struct {
			Data *struct {
				Options *[]optionPayload `json:"options"`
			} `json:"data"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(doc), &envelope); err != nil {
		return nil, types.NewParseError(DocAttributes, "result.data.options", "malformed JSON", err)
	}
	if envelope.Result == nil || envelope.Result.Data == nil || envelope.Result.Data.Options == nil {
		return nil, types.NewParseError(DocAttributes, "result.data.options", "missing required object", nil)
	}

	entries := *envelope.Result.Data.Options
	options := make([]models.Option, 0, len(entries))
	for i, entry := range entries {
		if entry.ID == nil || entry.FieldID == nil {
			path := fmt.Sprintf("result.data.options[%d]", i)
			return nil, types.NewParseError(DocAttributes, path, "missing id or field_id", nil)
		}
		options = append(options, models.Option{
			ID:        *entry.ID,
			FieldID:   *entry.FieldID,
			Label:     entry.Label,
			LabelEn:   entry.LabelEn,
			Value:     entry.Value,
			OptionImg: entry.OptionImg,
			HasChild:  entry.HasChild.Bool(),
			ParentID:  entry.ParentID,
			Order:     entry.Order.Int(),
		})
	}
	return options, nil
}
