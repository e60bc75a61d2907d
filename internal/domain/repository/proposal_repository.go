package repository

import "github.com/smartuniit/taskflow-api/internal/domain/entity"

// ProposalRepository define el puerto de persistencia para Proposal, sus
// líneas, condiciones y tareas entregables.
type ProposalRepository interface {
	Create(proposal *entity.Proposal) error
	CreateItem(item *entity.ProposalItem) error
	CreateTask(task *entity.ProposalTask) error
	GetByID(id string) (*entity.Proposal, error)
	GetItemsByProposalID(proposalID string) ([]*entity.ProposalItem, error)
	GetTasksByProposalID(proposalID string) ([]*entity.ProposalTask, error)
	List(limit, offset int) ([]*entity.Proposal, error)
	UpdateStatus(id, status string) error
	ExistsByNumber(number string) (bool, error)
	CountByYear(year int) (int, error)
}
