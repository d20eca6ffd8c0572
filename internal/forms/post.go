package forms

import (
	"blogicum/internal/models"
	"blogicum/internal/services"
	"blogicum/internal/utils"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

// DateTimeLayout is the wire format of datetime-local inputs.
const DateTimeLayout = "2006-01-02T15:04"

// MaxImageSize caps uploaded post images.
const MaxImageSize = 10 << 20

type postData struct {
	Title      string `form:"title" validate:"required,max=256"`
	Text       string `form:"text" validate:"required"`
	PubDate    string `form:"pub_date" validate:"required"`
	Category   string `form:"category" validate:"required"`
	Location   string `form:"location"`
	ImageClear string `form:"image-clear"`
}

type PostForm struct {
	Form

	data  postData
	image *multipart.FileHeader
	// pubDate is in the server's local time zone.
	pubDate time.Time
}

// NewPostForm builds an empty post form. The publication date defaults to now.
func NewPostForm(categories []models.Category, locations []models.Location) *PostForm {
	f := &PostForm{}
	f.Fields = []*Field{
		{Name: "title", Label: "Title", Kind: KindText, Required: true, Attrs: map[string]string{"maxlength": "256"}},
		{Name: "text", Label: "Text", Kind: KindTextarea, Required: true, Attrs: map[string]string{"rows": "10"}},
		{
			Name: "pub_date", Label: "Publication date", Kind: KindDateTimeLocal, Required: true,
			Value:    time.Now().Format(DateTimeLayout),
			HelpText: "Set a date in the future to schedule the post.",
		},
		{Name: "location", Label: "Location", Kind: KindSelect, Choices: locationChoices(locations)},
		{Name: "category", Label: "Category", Kind: KindSelect, Required: true, Choices: categoryChoices(categories)},
		{Name: "image", Label: "Image", Kind: KindFile, Attrs: map[string]string{"accept": "image/*"}},
	}
	return f
}

const emptyChoice = "---------"

func categoryChoices(categories []models.Category) []Choice {
	out := []Choice{{Value: "", Label: emptyChoice}}
	for _, c := range categories {
		out = append(out, Choice{Value: strconv.FormatUint(uint64(c.ID), 10), Label: c.Title})
	}
	return out
}

func locationChoices(locations []models.Location) []Choice {
	out := []Choice{{Value: "", Label: emptyChoice}}
	for _, l := range locations {
		out = append(out, Choice{Value: strconv.FormatUint(uint64(l.ID), 10), Label: l.Name})
	}
	return out
}

func idString(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

// Fill loads an existing post into the form for editing.
func (f *PostForm) Fill(p *models.Post) {
	f.SetValue("title", p.Title)
	f.SetValue("text", p.Text)
	f.SetValue("pub_date", p.PubDate.Local().Format(DateTimeLayout))
	f.SetValue("category", idString(p.CategoryID))
	f.SetValue("location", idString(p.LocationID))
	f.withCurrentImage(p.Image)
}

// withCurrentImage adds the clear checkbox after the file input.
func (f *PostForm) withCurrentImage(name string) {
	if name == "" || f.Field("image-clear") != nil {
		return
	}
	f.Field("image").HelpText = "Currently: " + name
	f.Fields = append(f.Fields, &Field{Name: "image-clear", Label: "Clear image", Kind: KindCheckbox})
}

// Bind reads and validates a submission. currentImage is the image of the
// post being edited, if any.
func (f *PostForm) Bind(c *gin.Context, currentImage string) bool {
	f.withCurrentImage(currentImage)
	if err := c.ShouldBind(&f.data); err != nil {
		f.AddError("", "The submitted form could not be read.")
		return false
	}
	f.data.Title = strings.TrimSpace(f.data.Title)
	f.data.Text = strings.TrimSpace(f.data.Text)

	f.SetValue("title", f.data.Title)
	f.SetValue("text", f.data.Text)
	f.SetValue("pub_date", f.data.PubDate)
	f.SetValue("category", f.data.Category)
	f.SetValue("location", f.data.Location)
	if box := f.Field("image-clear"); box != nil {
		box.Checked = f.data.ImageClear != ""
	}

	check(&f.Form, f.data)

	if f.data.PubDate != "" {
		t, err := time.ParseInLocation(DateTimeLayout, f.data.PubDate, time.Local)
		if err != nil {
			f.AddError("pub_date", "Enter a valid date/time.")
		}
		f.pubDate = t
	}
	if f.data.Category != "" && !hasChoice(f.Field("category").Choices, f.data.Category) {
		f.AddError("category", invalidChoice)
	}
	if f.data.Location != "" && !hasChoice(f.Field("location").Choices, f.data.Location) {
		f.AddError("location", invalidChoice)
	}

	header, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		f.AddError("image", "The submitted file could not be read.")
	default:
		if msg := checkImage(header); msg != "" {
			f.AddError("image", msg)
		} else {
			f.image = header
		}
	}
	return f.Valid()
}

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

func hasChoice(choices []Choice, value string) bool {
	for _, ch := range choices {
		if ch.Value != "" && ch.Value == value {
			return true
		}
	}
	return false
}

// checkImage returns a validation message, or "" when header holds an image.
func checkImage(header *multipart.FileHeader) string {
	if header.Size > MaxImageSize {
		return fmt.Sprintf("The image must be at most %d MB.", MaxImageSize>>20)
	}
	if header.Size == 0 {
		return "The submitted file is empty."
	}
	file, err := header.Open()
	if err != nil {
		return "The submitted file could not be read."
	}
	defer file.Close()
	mtype, err := mimetype.DetectReader(file)
	if err != nil || !strings.HasPrefix(mtype.String(), "image/") {
		return "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	}
	return ""
}

// Input converts a valid submission for the post service.
func (f *PostForm) Input() services.PostInput {
	in := services.PostInput{
		Title:      f.data.Title,
		Text:       f.data.Text,
		PubDate:    f.pubDate,
		Image:      f.image,
		ClearImage: f.data.ImageClear != "",
	}
	if id, ok := utils.ParseID(f.data.Category); ok {
		in.CategoryID = &id
	}
	if id, ok := utils.ParseID(f.data.Location); ok {
		in.LocationID = &id
	}
	return in
}
