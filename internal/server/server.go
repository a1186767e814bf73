package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"probuild/catalog/internal/config"
	"probuild/catalog/internal/domain"
	"probuild/catalog/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Server exposes the canonical dataset over a small CRUD API used by the
// admin UI. GET returns the whole document; POST mutates it and rewrites the
// file wholesale. The pipeline regenerates this file on the next run, so
// edits made here are working adjustments, not a second source of truth.
type Server struct {
	cfg   config.ServerConfig
	paths config.PathsConfig
	store storage.CatalogStore

	mu sync.Mutex
}

func New(cfg config.ServerConfig, paths config.PathsConfig, store storage.CatalogStore) *Server {
	return &Server{cfg: cfg, paths: paths, store: store}
}

// mutationRequest is the POST body. Data carries the partial record to merge
// for update, or the full record for create.
type mutationRequest struct {
	Action        string          `json:"action"`
	Type          string          `json:"type"`
	ID            string          `json:"id"`
	CategoryID    string          `json:"category_id"`
	SubcategoryID string          `json:"subcategory_id"`
	Data          json.RawMessage `json:"data"`
}

// Run blocks serving the API until the listener fails.
func (s *Server) Run() error {
	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/api/products", s.getProducts)
	router.POST("/api/products", s.mutateProducts)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	log.Infof("🚀 Catalog API listening on %s", addr)
	return router.Run(addr)
}

func (s *Server) getProducts(c *gin.Context) {
	dataset, err := s.store.LoadDataset(s.paths.Dataset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read dataset"})
		return
	}
	c.JSON(http.StatusOK, dataset)
}

func (s *Server) mutateProducts(c *gin.Context) {
	var req mutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dataset, err := s.store.LoadDataset(s.paths.Dataset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read dataset"})
		return
	}

	if err := apply(dataset, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.SaveDataset(s.paths.Dataset, dataset); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write dataset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dataset})
}

func apply(dataset *domain.Dataset, req *mutationRequest) error {
	switch req.Action {
	case "create":
		return applyCreate(dataset, req)
	case "update":
		return applyUpdate(dataset, req)
	case "delete":
		return applyDelete(dataset, req)
	default:
		return fmt.Errorf("unknown action %q", req.Action)
	}
}

func applyCreate(dataset *domain.Dataset, req *mutationRequest) error {
	switch req.Type {
	case "category":
		var cat domain.Category
		if err := json.Unmarshal(req.Data, &cat); err != nil {
			return fmt.Errorf("invalid category payload: %w", err)
		}
		dataset.Categories = append(dataset.Categories, cat)
		return nil
	case "product":
		var ref domain.ProductRef
		if err := json.Unmarshal(req.Data, &ref); err != nil {
			return fmt.Errorf("invalid product payload: %w", err)
		}
		for i := range dataset.Categories {
			cat := &dataset.Categories[i]
			if cat.ID != req.CategoryID {
				continue
			}
			if req.SubcategoryID == "" {
				cat.Products = append(cat.Products, ref)
				return nil
			}
			for j := range cat.Subcategories {
				if cat.Subcategories[j].ID == req.SubcategoryID {
					cat.Subcategories[j].Products = append(cat.Subcategories[j].Products, ref)
					return nil
				}
			}
			return fmt.Errorf("subcategory %q not found", req.SubcategoryID)
		}
		return fmt.Errorf("category %q not found", req.CategoryID)
	default:
		return fmt.Errorf("unknown type %q", req.Type)
	}
}

// applyUpdate merges the partial payload onto the existing record: fields
// absent from Data keep their current values.
func applyUpdate(dataset *domain.Dataset, req *mutationRequest) error {
	switch req.Type {
	case "category":
		id, err := payloadID(req)
		if err != nil {
			return err
		}
		for i := range dataset.Categories {
			if dataset.Categories[i].ID != id {
				continue
			}
			if err := json.Unmarshal(req.Data, &dataset.Categories[i]); err != nil {
				return fmt.Errorf("invalid category payload: %w", err)
			}
			return nil
		}
		return fmt.Errorf("category %q not found", id)
	case "product":
		id, err := payloadID(req)
		if err != nil {
			return err
		}
		for i := range dataset.Categories {
			cat := &dataset.Categories[i]
			for j := range cat.Products {
				if cat.Products[j].ID == id {
					return json.Unmarshal(req.Data, &cat.Products[j])
				}
			}
			for j := range cat.Subcategories {
				sub := &cat.Subcategories[j]
				for k := range sub.Products {
					if sub.Products[k].ID == id {
						return json.Unmarshal(req.Data, &sub.Products[k])
					}
				}
			}
		}
		return fmt.Errorf("product %q not found", id)
	default:
		return fmt.Errorf("unknown type %q", req.Type)
	}
}

func applyDelete(dataset *domain.Dataset, req *mutationRequest) error {
	switch req.Type {
	case "category":
		kept := dataset.Categories[:0]
		for _, cat := range dataset.Categories {
			if cat.ID != req.ID {
				kept = append(kept, cat)
			}
		}
		dataset.Categories = kept
		return nil
	case "product":
		for i := range dataset.Categories {
			cat := &dataset.Categories[i]
			cat.Products = dropRef(cat.Products, req.ID)
			for j := range cat.Subcategories {
				cat.Subcategories[j].Products = dropRef(cat.Subcategories[j].Products, req.ID)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown type %q", req.Type)
	}
}

func dropRef(refs []domain.ProductRef, id string) []domain.ProductRef {
	kept := refs[:0]
	for _, ref := range refs {
		if ref.ID != id {
			kept = append(kept, ref)
		}
	}
	return kept
}

// payloadID prefers the top-level id, falling back to the one embedded in
// Data the way the admin UI sends updates.
func payloadID(req *mutationRequest) (string, error) {
	if req.ID != "" {
		return req.ID, nil
	}
	var embedded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Data, &embedded); err != nil || embedded.ID == "" {
		return "", fmt.Errorf("missing record id")
	}
	return embedded.ID, nil
}
