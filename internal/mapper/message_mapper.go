package mapper

import (
	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/model"

	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	images := make([]string, 0, len(msg.Images))
	images = append(images, msg.Images...)

	return &entity.Message{
		Id:                msg.Id,
		AuthorId:          msg.AuthorId,
		ChatId:            msg.ChatId,
		ParentId:          msg.ParentId,
		ParentAuthorLabel: msg.ParentAuthorLabel,
		Body:              msg.Body,
		Images:            images,
		CreatedAt:         msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	images := make(datatypes.JSONSlice[string], 0, len(msg.Images))
	images = append(images, msg.Images...)

	return &model.Message{
		Id:                msg.Id,
		AuthorId:          msg.AuthorId,
		ChatId:            msg.ChatId,
		ParentId:          msg.ParentId,
		ParentAuthorLabel: msg.ParentAuthorLabel,
		Body:              msg.Body,
		Images:            images,
		CreatedAt:         msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(messages []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(messages))
	for i, msg := range messages {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
