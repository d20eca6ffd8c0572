package forms

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type commentData struct {
	Text string `form:"text" validate:"required"`
}

type CommentForm struct {
	Form
	data commentData
}

func NewCommentForm() *CommentForm {
	f := &CommentForm{}
	f.Fields = []*Field{
		{Name: "text", Label: "Comment", Kind: KindTextarea, Required: true, Attrs: map[string]string{"rows": "3"}},
	}
	return f
}

func (f *CommentForm) Fill(text string) {
	f.SetValue("text", text)
}

func (f *CommentForm) Bind(c *gin.Context) bool {
	if err := c.ShouldBind(&f.data); err != nil {
		f.AddError("", "The submitted form could not be read.")
		return false
	}
	f.data.Text = strings.TrimSpace(f.data.Text)
	f.SetValue("text", f.data.Text)
	check(&f.Form, f.data)
	return f.Valid()
}

func (f *CommentForm) Text() string {
	return f.data.Text
}
