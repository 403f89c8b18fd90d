package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/api"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"go.uber.org/zap"
)

// RestoService covers restaurant browsing: listing, search, best seller,
// nearby, recommended and detail with menus.
type RestoService struct {
	api *api.Client
	log *zap.Logger
}

func NewRestoService(client *api.Client, log *zap.Logger) *RestoService {
	return &RestoService{api: client, log: log}
}

// RestoPage is one page of restaurant listings.
type RestoPage struct {
	Restaurants []entity.Restaurant `json:"restaurants"`
	Pagination  entity.Pagination   `json:"pagination"`
}

func (s *RestoService) List(ctx context.Context, page, limit int) (*RestoPage, error) {
	return s.page(ctx, "/api/resto", pageQuery(page, limit))
}

func (s *RestoService) Search(ctx context.Context, q string, page, limit int) (*RestoPage, error) {
	vals := pageQuery(page, limit)
	vals.Set("q", q)
	return s.page(ctx, "/api/resto/search", vals)
}

func (s *RestoService) BestSeller(ctx context.Context, page, limit int) (*RestoPage, error) {
	return s.page(ctx, "/api/resto/best-seller", pageQuery(page, limit))
}

func (s *RestoService) Nearby(ctx context.Context, rangeKm, limit int) ([]entity.Restaurant, error) {
	vals := url.Values{}
	vals.Set("range", strconv.Itoa(rangeKm))
	vals.Set("limit", strconv.Itoa(limit))

	var out struct {
		Restaurants []entity.Restaurant `json:"restaurants"`
	}
	if err := s.get(ctx, "/api/resto/nearby?"+vals.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Restaurants, nil
}

func (s *RestoService) Recommended(ctx context.Context) ([]entity.Restaurant, error) {
	var out struct {
		Restaurants []entity.Restaurant `json:"restaurants"`
	}
	if err := s.get(ctx, "/api/resto/recommended", &out); err != nil {
		return nil, err
	}
	return out.Restaurants, nil
}

func (s *RestoService) Detail(ctx context.Context, id uint) (*entity.RestaurantDetail, error) {
	var out entity.RestaurantDetail
	if err := s.get(ctx, fmt.Sprintf("/api/resto/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestoService) page(ctx context.Context, path string, vals url.Values) (*RestoPage, error) {
	var out RestoPage
	if err := s.get(ctx, path+"?"+vals.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *RestoService) get(ctx context.Context, path string, out any) error {
	if err := s.api.Get(ctx, path, out); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return err
		}
		return fmt.Errorf("%w: %v", api.ErrFetchFailed, err)
	}
	return nil
}

func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	vals := url.Values{}
	vals.Set("page", strconv.Itoa(page))
	vals.Set("limit", strconv.Itoa(limit))
	return vals
}
