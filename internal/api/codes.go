package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gyeh/bcbpscan/internal/specs"
)

type registryView struct {
	Kind    string        `json:"kind"`
	Entries []specs.Entry `json:"entries"`
}

func newRegistryView(r specs.Registry) registryView {
	return registryView{Kind: r.Kind(), Entries: r.Entries()}
}

// CodesListHandler lists every code registry with its entries.
func CodesListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		regs := specs.Registries()
		out := make([]registryView, 0, len(regs))
		for _, r := range regs {
			out = append(out, newRegistryView(r))
		}
		c.JSON(http.StatusOK, out)
	}
}

// CodesKindHandler returns one registry, or 404 for an unknown kind.
func CodesKindHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := specs.RegistryByKind(c.Param("kind"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown code kind"})
			return
		}
		c.JSON(http.StatusOK, newRegistryView(r))
	}
}

// CodeParseHandler resolves one value through a registry. Unrecognized
// values resolve to the registry's UNKNOWN entry, never an error.
func CodeParseHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		r, ok := specs.RegistryByKind(c.Param("kind"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown code kind"})
			return
		}
		c.JSON(http.StatusOK, r.Parse(c.Param("value")))
	}
}
