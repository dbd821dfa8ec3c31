package models

import "time"

type TransactionModel struct {
	ID                 int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ExternalReference  string     `gorm:"column:external_reference;uniqueIndex;not null"`
	ClienteID          int64      `gorm:"column:cliente_id;not null"`
	StatusPagamento    string     `gorm:"column:status_pagamento;not null"`
	DataAprovacao      *time.Time `gorm:"column:data_aprovacao"`
	MeioPagamento      *string    `gorm:"column:meio_pagamento"`
	NotificacaoEnviada bool       `gorm:"column:notificacao_enviada;not null;default:false"`
}

func (TransactionModel) TableName() string { return "transactions" }

type CustomerModel struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Email string `gorm:"column:email"`
	Nome  string `gorm:"column:nome"`
}

func (CustomerModel) TableName() string { return "clientes" }

// LockedTransactionRow is a transaction joined with its customer, read FOR UPDATE.
type LockedTransactionRow struct {
	ID                 int64      `gorm:"column:id"`
	ExternalReference  string     `gorm:"column:external_reference"`
	ClienteID          int64      `gorm:"column:cliente_id"`
	StatusPagamento    string     `gorm:"column:status_pagamento"`
	DataAprovacao      *time.Time `gorm:"column:data_aprovacao"`
	MeioPagamento      *string    `gorm:"column:meio_pagamento"`
	NotificacaoEnviada bool       `gorm:"column:notificacao_enviada"`
	Email              string     `gorm:"column:email"`
	Nome               string     `gorm:"column:nome"`
}
