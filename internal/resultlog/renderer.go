package resultlog

import (
	"github.com/dmitrijs2005/gophupload/internal/upload"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const successText = "Successfully added file(s). Quota left: "

var _ upload.Renderer = (*Renderer)(nil)

// Renderer appends one entry per outcome to a Log. Links are built from the
// target the files were uploaded to.
type Renderer struct {
	log    *Log
	target upload.Target
}

func NewRenderer(log *Log, target upload.Target) *Renderer {
	return &Renderer{log: log, target: target}
}

// Render implements upload.Renderer.
func (r *Renderer) Render(o upload.Outcome) {
	switch o := o.(type) {
	case upload.Success:
		r.RenderSuccess(o)
	case upload.Failure:
		r.RenderError(o.Status, o.Detail)
	}
}

// RenderSuccess appends
//
//	<li class="success">Successfully added file(s). Quota left: <strong>Q</strong>
//	  <ol><li><a target="_blank" href="/bin/app/ws/guid">name</a></li>...</ol>
//	</li>
//
// with files in the order given. The list is empty when no files were stored.
func (r *Renderer) RenderSuccess(s upload.Success) {
	li := element(atom.Li, "class", KindSuccess)
	li.AppendChild(text(successText))

	strong := element(atom.Strong)
	strong.AppendChild(text(s.Quota))
	li.AppendChild(strong)

	ol := element(atom.Ol)
	for _, f := range s.Files {
		ol.AppendChild(r.fileItem(f))
	}
	li.AppendChild(ol)

	r.log.Append(li)
}

func (r *Renderer) fileItem(f upload.StoredFile) *html.Node {
	a := element(atom.A, "target", "_blank", "href", r.target.FileLink(f.GUID))
	a.AppendChild(text(f.FileName))

	item := element(atom.Li)
	item.AppendChild(a)
	return item
}

// RenderError appends <li class="error">status: detail</li>.
func (r *Renderer) RenderError(status, detail string) {
	li := element(atom.Li, "class", KindError)
	li.AppendChild(text(status + ": " + detail))
	r.log.Append(li)
}
