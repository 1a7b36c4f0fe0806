package handlers

import (
	"pawhaven/internal/config"
	"pawhaven/internal/repos"
	"pawhaven/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler      *AuthHandler
	PetHandler       *PetHandler
	OwnerHandler     *OwnerHandler
	SitterHandler    *SitterHandler
	ShopHandler      *ShopHandler
	CartHandler      *CartHandler
	SellerHandler    *SellerHandler
	CommunityHandler *CommunityHandler
	PlaydateHandler  *PlaydateHandler
	AdminHandler     *AdminHandler

	Auth *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	petRepo := repos.NewPetRepo(db)
	sitterRepo := repos.NewSitterRepo(db)
	availRepo := repos.NewAvailabilityRepo(db)
	bookingRepo := repos.NewBookingRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	campaignRepo := repos.NewCampaignRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	communityRepo := repos.NewCommunityRepo(db)
	playdateRepo := repos.NewPlaydateRepo(db)

	notify := services.LogNotifier{}

	authSvc := &services.AuthService{Users: userRepo, Notify: notify}
	bookingSvc := &services.BookingService{
		Bookings: bookingRepo, Avail: availRepo, Pets: petRepo, Sitters: sitterRepo, Notify: notify,
	}
	cartSvc := &services.CartService{Orders: orderRepo, Prods: prodRepo}
	orderSvc := &services.OrderService{
		Orders: orderRepo, Prods: prodRepo, DecrementStock: cfg.DecrementStockOnCheckout,
	}
	reviewSvc := &services.ReviewService{Reviews: reviewRepo}
	catalogSvc := &services.CatalogService{Prods: prodRepo, Campaigns: campaignRepo, Orders: orderRepo}
	communitySvc := &services.CommunityService{Community: communityRepo, Notify: notify}
	playdateSvc := &services.PlaydateService{Playdates: playdateRepo, Pets: petRepo, Notify: notify}

	return &Deps{
		AuthHandler:      &AuthHandler{Auth: authSvc},
		PetHandler:       &PetHandler{Pets: petRepo, MediaDir: cfg.MediaDir},
		OwnerHandler:     &OwnerHandler{Bookings: bookingSvc, Reviews: reviewSvc, Sitters: sitterRepo, Pets: petRepo},
		SitterHandler:    &SitterHandler{Bookings: bookingSvc, Reviews: reviewSvc, Sitters: sitterRepo, MediaDir: cfg.MediaDir},
		ShopHandler:      &ShopHandler{Catalog: catalogSvc, Orders: orderSvc, Reviews: reviewSvc},
		CartHandler:      &CartHandler{Cart: cartSvc, Orders: orderSvc},
		SellerHandler:    &SellerHandler{Catalog: catalogSvc, Orders: orderSvc, Reviews: reviewSvc, MediaDir: cfg.MediaDir},
		CommunityHandler: &CommunityHandler{Community: communitySvc, MediaDir: cfg.MediaDir},
		PlaydateHandler:  &PlaydateHandler{Playdates: playdateSvc, Pets: petRepo},
		AdminHandler: &AdminHandler{
			Users: userRepo, Sitters: sitterRepo, Pets: petRepo, Prods: prodRepo,
			Bookings: bookingRepo, Notify: notify,
		},
		Auth: authSvc,
	}
}
