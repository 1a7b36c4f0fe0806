package repos

import (
	"pawhaven/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CampaignRepo struct{ db *sqlx.DB }

func NewCampaignRepo(db *sqlx.DB) *CampaignRepo { return &CampaignRepo{db: db} }

const campaignCols = `id, seller_id, name, discount, description, start_date, end_date, active, created_at`

func (r *CampaignRepo) ListBySeller(sellerID string) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := r.db.Select(&out, `
		SELECT `+campaignCols+` FROM campaigns WHERE seller_id=? ORDER BY start_date DESC
	`, sellerID)
	return out, err
}

func (r *CampaignRepo) GetOwned(id, sellerID string) (domain.Campaign, error) {
	var c domain.Campaign
	err := r.db.Get(&c, `SELECT `+campaignCols+` FROM campaigns WHERE id=? AND seller_id=?`, id, sellerID)
	return c, err
}

func (r *CampaignRepo) Create(c *domain.Campaign) error {
	_, err := r.db.Exec(`
		INSERT INTO campaigns(id, seller_id, name, discount, description, start_date, end_date, active)
		VALUES(?,?,?,?,?,?,?,?)
	`, c.ID, c.SellerID, c.Name, c.Discount, c.Description, c.StartDate, c.EndDate, c.Active)
	return err
}

func (r *CampaignRepo) Update(c *domain.Campaign) error {
	_, err := r.db.Exec(`
		UPDATE campaigns SET name=?, discount=?, description=?, start_date=?, end_date=?, active=?
		WHERE id=? AND seller_id=?
	`, c.Name, c.Discount, c.Description, c.StartDate, c.EndDate, c.Active, c.ID, c.SellerID)
	return err
}

func (r *CampaignRepo) Delete(id, sellerID string) error {
	_, err := r.db.Exec(`DELETE FROM campaigns WHERE id=? AND seller_id=?`, id, sellerID)
	return err
}

func (r *CampaignRepo) CountBySeller(sellerID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM campaigns WHERE seller_id=?`, sellerID)
	return n, err
}
