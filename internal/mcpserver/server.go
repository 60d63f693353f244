// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Othala tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/othala/internal/filter"
	"github.com/starford/othala/internal/session"
)

// Server wraps the MCP server with Othala tools.
type Server struct {
	mcp *server.MCPServer
	svc *session.Service
}

// New creates a new MCP server with all Othala tools registered.
func New(svc *session.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Othala",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_portfolio",
		mcp.WithDescription("Search jobs, projects, education, and achievements in the portfolio document. "+
			"All supplied criteria must hold at once."),
		mcp.WithString("query", mcp.Description("Keyword matched against titles and descriptions; any word may match")),
		mcp.WithString("skills", mcp.Description("Comma-separated skill names; a record matches if it carries any of them")),
		mcp.WithString("from", mcp.Description("Range start as YYYY-MM-DD; records active in the range match")),
		mcp.WithString("to", mcp.Description("Range end as YYYY-MM-DD")),
		mcp.WithBoolean("links", mcp.Description("If true, only records with at least one link match")),
	), s.searchPortfolio)

	s.mcp.AddTool(mcp.NewTool("get_record",
		mcp.WithDescription("Fetch the full record behind a search hit by its id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id from a search_portfolio result")),
	), s.getRecord)

	s.mcp.AddTool(mcp.NewTool("read_profile",
		mcp.WithDescription("Read the portfolio owner's profile: name, bio, title, location, and social links."),
	), s.readProfile)

	s.mcp.AddTool(mcp.NewTool("list_skills",
		mcp.WithDescription("List every distinct skill mentioned across the portfolio."),
	), s.listSkills)

	s.mcp.AddTool(mcp.NewTool("get_document_contract",
		mcp.WithDescription("Returns the canonical portfolio document format. "+
			"Call this before constructing a document for import."),
	), s.getDocumentContract)

	// Resource: document format contract.
	s.mcp.AddResource(
		mcp.NewResource("portfolio://document-format", "Portfolio Document Format",
			mcp.WithResourceDescription("Canonical JSON document format for portfolio data files."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDocumentFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchPortfolio(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var c filter.Criteria
	if q, err := req.RequireString("query"); err == nil {
		c.Keyword = q
	}
	if raw, err := req.RequireString("skills"); err == nil {
		for _, sk := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(sk); trimmed != "" {
				c.Skills = append(c.Skills, trimmed)
			}
		}
	}
	if raw, err := req.RequireString("from"); err == nil && raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid 'from' date: %s", raw)), nil
		}
		c.Start = &t
	}
	if raw, err := req.RequireString("to"); err == nil && raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid 'to' date: %s", raw)), nil
		}
		c.End = &t
	}
	if links, err := req.RequireBool("links"); err == nil {
		c.RequireLinks = links
	}

	results := s.svc.Search(c)
	if len(results) == 0 {
		return mcp.NewToolResultText("no records matched"), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := s.svc.Resolve(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := s.svc.Document()
	profile := session.Profile{
		Name:       doc.Name,
		BornYear:   doc.BornYear,
		Pronouns:   doc.Pronouns,
		Image:      doc.Image,
		ShortBio:   doc.ShortBio,
		LongBio:    doc.LongBio,
		Title:      doc.Title,
		Location:   doc.Location,
		ResumeLink: doc.ResumeLink,
		Socials:    doc.Socials,
	}
	out, _ := json.MarshalIndent(profile, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listSkills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	skills := s.svc.Skills()
	if len(skills) == 0 {
		return mcp.NewToolResultText("no skills recorded"), nil
	}
	return mcp.NewToolResultText(strings.Join(skills, "\n")), nil
}

func (s *Server) getDocumentContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(DocumentFormatContract), nil
}

func (s *Server) readDocumentFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "portfolio://document-format",
			MIMEType: "text/markdown",
			Text:     DocumentFormatContract,
		},
	}, nil
}
