package build

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/taskrevolution/ttr/internal/entity"
	"github.com/taskrevolution/ttr/internal/repo"
	"github.com/taskrevolution/ttr/internal/schedule"
	"github.com/taskrevolution/ttr/internal/validate"
)

//go:embed templates/*.html.tmpl templates/style.css
var assets embed.FS

var pageTemplates = template.Must(template.ParseFS(assets, "templates/*.html.tmpl"))

// NavLink is one breadcrumb entry.
type NavLink struct {
	Href  string
	Label string
}

// NavData is the common header every page template renders (§4.H "a
// navigable html/template tree").
type NavData struct {
	RootPath    string // relative path back to the site root, e.g. "../../"
	Breadcrumbs []NavLink
}

// page is one unit of independent, parallel-renderable work: RelPath is
// where its bytes land under the output root, Render computes them.
type page struct {
	RelPath string
	Render  func() ([]byte, error)
}

// Build renders the whole workspace tree into opts.OutDir (§4.H). Page
// bytes are computed concurrently via a bounded errgroup, then written to
// disk sequentially on the calling goroutine so the filesystem never sees
// two page writes racing (§5: "independent page renders may parallelize,
// writes serialize").
func Build(reg *repo.Registry, opts Options) (*Report, error) {
	log := opts.logger()
	log.Infow("build starting", "outDir", opts.OutDir)

	w, err := loadWorld(reg)
	if err != nil {
		log.Errorw("loading world failed", "error", err)
		return nil, err
	}

	pages, err := collectPages(w)
	if err != nil {
		log.Errorw("collecting pages failed", "error", err)
		return nil, err
	}
	pages = append(pages, page{
		RelPath: filepath.Join("assets", "style.css"),
		Render: func() ([]byte, error) {
			return assets.ReadFile("templates/style.css")
		},
	})

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}

	rendered := make([][]byte, len(pages))
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, p := range pages {
		i, p := i, p
		g.Go(func() error {
			data, err := p.Render()
			if err != nil {
				return fmt.Errorf("rendering %s: %w", p.RelPath, err)
			}
			rendered[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorw("rendering pages failed", "error", err)
		return nil, err
	}

	var written []string
	for i, p := range pages {
		outPath := filepath.Join(opts.OutDir, p.RelPath)
		if err := repo.WriteAtomic(outPath, rendered[i]); err != nil {
			log.Errorw("writing page failed", "path", outPath, "error", err)
			return nil, err
		}
		written = append(written, p.RelPath)
	}

	if err := CheckLinks(opts.OutDir, written); err != nil {
		log.Errorw("link check failed", "error", err)
		return nil, err
	}

	log.Infow("build complete", "pages", len(pages))
	return &Report{PagesWritten: len(pages), OutDir: opts.OutDir}, nil
}

func execTemplate(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// collectPages walks the whole World snapshot and builds one page per
// company, project, task, resource, plus the home page and one Gantt
// chart per company and per project scope.
func collectPages(w *validate.World) ([]page, error) {
	var pages []page

	managerName := "workspace"
	if w.Config != nil {
		managerName = w.Config.ManagerName
	}

	companies := append([]*entity.Company{}, w.Companies...)
	sort.Slice(companies, func(i, j int) bool { return companies[i].Code < companies[j].Code })

	pages = append(pages, page{
		RelPath: "index.html",
		Render: func() ([]byte, error) {
			return execTemplate("home", map[string]any{
				"ManagerName": managerName,
				"Companies":   companies,
				"Nav":         NavData{RootPath: ""},
			})
		},
	})

	cal := calendarFor(w)

	for _, c := range companies {
		c := c
		companyDir := filepath.Join("companies", c.Code)
		projects := projectsOf(w, c.Code)
		resources := append([]*entity.Resource{}, w.CompanyResources[c.Code]...)
		sort.Slice(resources, func(i, j int) bool { return resources[i].Code < resources[j].Code })

		nav := NavData{RootPath: "../../", Breadcrumbs: []NavLink{{Href: "index.html", Label: c.Name}}}

		pages = append(pages, page{
			RelPath: filepath.Join(companyDir, "index.html"),
			Render: func() ([]byte, error) {
				return execTemplate("company", map[string]any{
					"Company": c, "Projects": projects, "Resources": resources,
					"Nav": nav, "AssetsPath": "../../",
				})
			},
		})

		companyTasks := allTasksOf(w, c.Code)
		pages = append(pages, page{
			RelPath: filepath.Join(companyDir, "gantt.html"),
			Render: func() ([]byte, error) {
				svg, err := renderGanttSVG(companyTasks, cal, resourceVacationsFor(w, c.Code, ""))
				if err != nil {
					return nil, err
				}
				return execTemplate("gantt", map[string]any{
					"Title": c.Name, "SVG": template.HTML(svg), //nolint:gosec
					"Nav": NavData{RootPath: "../../", Breadcrumbs: []NavLink{{Href: "index.html", Label: c.Name}, {Href: "gantt.html", Label: "Gantt"}}},
					"AssetsPath": "../../",
				})
			},
		})

		for _, p := range projects {
			p := p
			projectDir := filepath.Join(companyDir, "projects", p.Code)
			tasks := w.TasksIn(c.Code, p.Code)
			sort.Slice(tasks, func(i, j int) bool { return tasks[i].Code < tasks[j].Code })
			projectResources := append([]*entity.Resource{}, w.ProjectResources[c.Code+"/"+p.Code]...)
			sort.Slice(projectResources, func(i, j int) bool { return projectResources[i].Code < projectResources[j].Code })

			projNav := NavData{RootPath: "../../../../", Breadcrumbs: []NavLink{
				{Href: "../../index.html", Label: c.Name},
				{Href: "index.html", Label: p.Name},
			}}

			pages = append(pages, page{
				RelPath: filepath.Join(projectDir, "index.html"),
				Render: func() ([]byte, error) {
					return execTemplate("project", map[string]any{
						"Project": p, "Tasks": tasks, "Resources": projectResources,
						"Nav": projNav, "AssetsPath": "../../../../",
					})
				},
			})

			pages = append(pages, page{
				RelPath: filepath.Join(projectDir, "gantt.html"),
				Render: func() ([]byte, error) {
					svg, err := renderGanttSVG(tasks, cal, resourceVacationsFor(w, c.Code, p.Code))
					if err != nil {
						return nil, err
					}
					return execTemplate("gantt", map[string]any{
						"Title": p.Name, "SVG": template.HTML(svg), //nolint:gosec
						"Nav": NavData{RootPath: "../../../../", Breadcrumbs: []NavLink{
							{Href: "../../index.html", Label: c.Name},
							{Href: "index.html", Label: p.Name},
							{Href: "gantt.html", Label: "Gantt"},
						}},
						"AssetsPath": "../../../../",
					})
				},
			})

			cache := schedule.NewCache()
			results, err := schedule.Recompute(tasks, cal, resourceVacationsFor(w, c.Code, p.Code), cache)
			if err != nil {
				return nil, err
			}
			windowByCode := make(map[string]schedule.Window, len(results))
			for _, r := range results {
				windowByCode[r.Task.Code] = r.Window
			}

			for _, t := range tasks {
				t := t
				win := windowByCode[t.Code]
				taskNav := NavData{RootPath: "../../../../../", Breadcrumbs: []NavLink{
					{Href: "../../../index.html", Label: c.Name},
					{Href: "../index.html", Label: p.Name},
					{Href: t.Code + ".html", Label: t.Code},
				}}
				pages = append(pages, page{
					RelPath: filepath.Join(projectDir, "tasks", t.Code+".html"),
					Render: func() ([]byte, error) {
						return execTemplate("task", map[string]any{
							"Task": t, "Window": &win,
							"Nav": taskNav, "AssetsPath": "../../../../../",
						})
					},
				})
			}

			for _, r := range projectResources {
				r := r
				resNav := NavData{RootPath: "../../../../../", Breadcrumbs: []NavLink{
					{Href: "../../../index.html", Label: c.Name},
					{Href: "../index.html", Label: p.Name},
					{Href: r.Code + ".html", Label: r.Code},
				}}
				pages = append(pages, page{
					RelPath: filepath.Join(projectDir, "resources", r.Code+".html"),
					Render: func() ([]byte, error) {
						return execTemplate("resource", map[string]any{
							"Resource": r, "Nav": resNav, "AssetsPath": "../../../../../",
						})
					},
				})
			}
		}

		for _, r := range resources {
			r := r
			resNav := NavData{RootPath: "../../../", Breadcrumbs: []NavLink{
				{Href: "../index.html", Label: c.Name},
				{Href: r.Code + ".html", Label: r.Code},
			}}
			pages = append(pages, page{
				RelPath: filepath.Join(companyDir, "resources", r.Code+".html"),
				Render: func() ([]byte, error) {
					return execTemplate("resource", map[string]any{
						"Resource": r, "Nav": resNav, "AssetsPath": "../../../",
					})
				},
			})
		}
	}

	return pages, nil
}

func projectsOf(w *validate.World, companyCode string) []*entity.Project {
	var out []*entity.Project
	for _, pe := range w.Projects {
		if pe.CompanyCode == companyCode {
			out = append(out, pe.Project)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func allTasksOf(w *validate.World, companyCode string) []*entity.Task {
	var out []*entity.Task
	for _, p := range projectsOf(w, companyCode) {
		out = append(out, w.TasksIn(companyCode, p.Code)...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func resourceVacationsFor(w *validate.World, companyCode, projectCode string) map[string][]entity.VacationPeriod {
	out := map[string][]entity.VacationPeriod{}
	for _, r := range w.CompanyResources[companyCode] {
		out[r.Code] = r.Vacations
	}
	if projectCode != "" {
		for _, r := range w.ProjectResources[companyCode+"/"+projectCode] {
			out[r.Code] = r.Vacations
		}
	}
	return out
}
