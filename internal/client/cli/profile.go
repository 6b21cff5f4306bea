package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/alumnilink/internal/netx"
)

// maxAvatarSize caps the picture the CLI will upload.
const maxAvatarSize = 5 << 20

var uploadFn = netx.UploadToPresignedURL

// Ping checks that the server answers.
func (a *App) Ping(ctx context.Context) error {
	if err := a.api.Ping(ctx); err != nil {
		return describe(err)
	}
	printlnFn("pong")
	return nil
}

// Avatar uploads file as the profile picture of the logged-in user.
func (a *App) Avatar(ctx context.Context, file string) error {
	token := a.session.Token()
	if token == "" {
		return fmt.Errorf("you are not logged in")
	}

	st, err := os.Stat(file)
	if err != nil {
		return err
	}
	if st.Size() > maxAvatarSize {
		return fmt.Errorf("%s is too large (%d bytes, max %d)", file, st.Size(), maxAvatarSize)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	contentType := http.DetectContentType(data)

	up, err := a.api.PresignAvatarUpload(ctx, token, contentType)
	if err != nil {
		return describe(err)
	}
	if err := uploadFn(ctx, up.URL, contentType, data); err != nil {
		return err
	}

	url, err := a.api.AvatarURL(ctx, token, up.Key)
	if err != nil {
		return describe(err)
	}
	printlnFn("Avatar uploaded:", up.Key)
	printlnFn("View it at", url)
	return nil
}
